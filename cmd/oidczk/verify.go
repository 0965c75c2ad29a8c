package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/zkopenid/oidczk/internal/core/pipeline"
)

var verifyFlags struct {
	ParamsPath      string
	VCPath          string
	ProofPath       string
	PublicInputPath string
}

// verifyCmd 验证证明
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "验证证明",
	Long:  "验证证明与公开输入；验证不通过时仍以 0 退出，只有读取或反序列化失败才报错",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := zkOptions()
		ok, err := runner.Verify(cmd.Context(), pipeline.VerifyRequest{
			ParamsPath:      orDefault(verifyFlags.ParamsPath, opts.ParamsPath()),
			Keys:            keyPaths("", verifyFlags.VCPath),
			ProofPath:       orDefault(verifyFlags.ProofPath, opts.ProofPath()),
			PublicInputPath: orDefault(verifyFlags.PublicInputPath, opts.PublicInputPath()),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok {
			pterm.Success.WithWriter(out).Println("Verify success")
		} else {
			pterm.Error.WithWriter(out).Println("Verify failed")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFlags.ParamsPath, "params-path", "", "参考串路径 (默认: <build_dir>/params.bin)")
	verifyCmd.Flags().StringVar(&verifyFlags.VCPath, "vc-path", "", "验证密钥路径 (默认: <build_dir>/app.vc)")
	verifyCmd.Flags().StringVar(&verifyFlags.ProofPath, "proof-path", "", "证明路径 (默认: <build_dir>/app.proof)")
	verifyCmd.Flags().StringVar(&verifyFlags.PublicInputPath, "public-input-path", "", "公开输入路径 (默认: <build_dir>/public_input.json)")
}
