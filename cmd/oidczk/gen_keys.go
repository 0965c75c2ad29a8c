package main

import (
	"github.com/spf13/cobra"

	"github.com/zkopenid/oidczk/internal/core/pipeline"
)

var genKeysFlags struct {
	ParamsPath  string
	IDTokenPath string
	PKPath      string
	VCPath      string
}

// genKeysCmd 生成证明密钥与验证密钥
var genKeysCmd = &cobra.Command{
	Use:     "generate-keys",
	Aliases: []string{"gen-keys"},
	Short:   "生成证明密钥与验证密钥",
	Long:    "用样例 token 合成电路并生成 PlonK 证明密钥与验证密钥，密钥只依赖电路形状",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := zkOptions()
		return runner.GenKeys(cmd.Context(), pipeline.GenKeysRequest{
			ParamsPath:  orDefault(genKeysFlags.ParamsPath, opts.ParamsPath()),
			IDTokenPath: orDefault(genKeysFlags.IDTokenPath, opts.IDTokenPath()),
			Keys:        keyPaths(genKeysFlags.PKPath, genKeysFlags.VCPath),
		})
	},
}

func init() {
	genKeysCmd.Flags().StringVar(&genKeysFlags.ParamsPath, "params-path", "", "参考串路径 (默认: <build_dir>/params.bin)")
	genKeysCmd.Flags().StringVar(&genKeysFlags.IDTokenPath, "id-token-path", "", "样例 token 路径 (默认: <build_dir>/id_token.txt)")
	genKeysCmd.Flags().StringVar(&genKeysFlags.PKPath, "pk-path", "", "证明密钥输出路径 (默认: <build_dir>/app.pk)")
	genKeysCmd.Flags().StringVar(&genKeysFlags.VCPath, "vc-path", "", "验证密钥输出路径 (默认: <build_dir>/app.vc)")
}
