package main

import (
	"github.com/spf13/cobra"

	"github.com/zkopenid/oidczk/internal/core/pipeline"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

var plainArgsFlags struct {
	IDTokenPath string
	OutputPath  string
}

// plainArgsCmd 输出普通参数
var plainArgsCmd = &cobra.Command{
	Use:     "emit-plain-args",
	Aliases: []string{"open-id-args"},
	Short:   "输出声明偏移与原始段的紧凑参数",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := zkOptions()
		return runner.EmitPlainArgs(cmd.Context(), pipeline.PlainArgsRequest{
			IDTokenPath: orDefault(plainArgsFlags.IDTokenPath, opts.IDTokenPath()),
			OutputPath:  orDefault(plainArgsFlags.OutputPath, opts.PlainOutputPath()),
		})
	},
}

var zkArgsFlags struct {
	ParamsPath    string
	PKPath        string
	VCPath        string
	Pepper        string
	IDTokenPath   string
	OutputPath    string
	ZKConfigsPath string
}

// zkArgsCmd 输出 ZK 参数与 zkConfigs.json
var zkArgsCmd = &cobra.Command{
	Use:     "emit-zk-args",
	Aliases: []string{"open-id-zk-args"},
	Short:   "生成证明并输出 ZK 紧凑参数与 zkConfigs.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		pepper, err := zkproof.ParsePepper(zkArgsFlags.Pepper)
		if err != nil {
			return err
		}
		opts := zkOptions()
		return runner.EmitZKArgs(cmd.Context(), pipeline.ZKArgsRequest{
			ParamsPath:    orDefault(zkArgsFlags.ParamsPath, opts.ParamsPath()),
			Keys:          keyPaths(zkArgsFlags.PKPath, zkArgsFlags.VCPath),
			Pepper:        pepper,
			IDTokenPath:   orDefault(zkArgsFlags.IDTokenPath, opts.IDTokenPath()),
			OutputPath:    orDefault(zkArgsFlags.OutputPath, opts.ZKOutputPath()),
			ZKConfigsPath: orDefault(zkArgsFlags.ZKConfigsPath, opts.ZKConfigsPath()),
		})
	},
}

func init() {
	plainArgsCmd.Flags().StringVar(&plainArgsFlags.IDTokenPath, "id-token-path", "", "token 路径 (默认: <build_dir>/id_token.txt)")
	plainArgsCmd.Flags().StringVar(&plainArgsFlags.OutputPath, "output-path", "", "输出路径 (默认: <build_dir>/id_token.output)")

	zkArgsCmd.Flags().StringVar(&zkArgsFlags.ParamsPath, "params-path", "", "参考串路径 (默认: <build_dir>/params.bin)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.PKPath, "pk-path", "", "证明密钥路径 (默认: <build_dir>/app.pk)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.VCPath, "vc-path", "", "验证密钥路径 (默认: <build_dir>/app.vc)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.Pepper, "pepper", "", "32 字节 pepper 的十六进制 (必填)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.IDTokenPath, "id-token-path", "", "token 路径 (默认: <build_dir>/id_token.txt)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.OutputPath, "output-path", "", "输出路径 (默认: <build_dir>/id_token_zk.output)")
	zkArgsCmd.Flags().StringVar(&zkArgsFlags.ZKConfigsPath, "zk-configs-path", "", "zkConfigs.json 输出路径 (默认: <build_dir>/zkConfigs.json)")
	_ = zkArgsCmd.MarkFlagRequired("pepper")
}
