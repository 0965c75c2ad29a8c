package main

import (
	"github.com/spf13/cobra"

	"github.com/zkopenid/oidczk/internal/core/pipeline"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

var proveFlags struct {
	ParamsPath        string
	PKPath            string
	VCPath            string
	Pepper            string
	IDTokenPath       string
	ProofPath         string
	PublicInputPath   string
	ContractInputPath string
}

// proveCmd 生成证明
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "生成证明",
	Long:  "为 token 和 pepper 生成 PlonK 证明，写出证明、public_input.json 与 contract_input.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		pepper, err := zkproof.ParsePepper(proveFlags.Pepper)
		if err != nil {
			return err
		}
		opts := zkOptions()
		_, err = runner.Prove(cmd.Context(), pipeline.ProveRequest{
			ParamsPath:        orDefault(proveFlags.ParamsPath, opts.ParamsPath()),
			Keys:              keyPaths(proveFlags.PKPath, proveFlags.VCPath),
			Pepper:            pepper,
			IDTokenPath:       orDefault(proveFlags.IDTokenPath, opts.IDTokenPath()),
			ProofPath:         orDefault(proveFlags.ProofPath, opts.ProofPath()),
			PublicInputPath:   orDefault(proveFlags.PublicInputPath, opts.PublicInputPath()),
			ContractInputPath: orDefault(proveFlags.ContractInputPath, opts.ContractInputPath()),
		})
		return err
	},
}

func init() {
	proveCmd.Flags().StringVar(&proveFlags.ParamsPath, "params-path", "", "参考串路径 (默认: <build_dir>/params.bin)")
	proveCmd.Flags().StringVar(&proveFlags.PKPath, "pk-path", "", "证明密钥路径 (默认: <build_dir>/app.pk)")
	proveCmd.Flags().StringVar(&proveFlags.VCPath, "vc-path", "", "验证密钥路径 (默认: <build_dir>/app.vc)")
	proveCmd.Flags().StringVar(&proveFlags.Pepper, "pepper", "", "32 字节 pepper 的十六进制 (必填)")
	proveCmd.Flags().StringVar(&proveFlags.IDTokenPath, "id-token-path", "", "token 路径 (默认: <build_dir>/id_token.txt)")
	proveCmd.Flags().StringVar(&proveFlags.ProofPath, "proof-path", "", "证明输出路径 (默认: <build_dir>/app.proof)")
	proveCmd.Flags().StringVar(&proveFlags.PublicInputPath, "public-input-path", "", "公开输入输出路径 (默认: <build_dir>/public_input.json)")
	proveCmd.Flags().StringVar(&proveFlags.ContractInputPath, "contract-input-path", "", "合约输入输出路径 (默认: <build_dir>/contract_input.json)")
	_ = proveCmd.MarkFlagRequired("pepper")
}
