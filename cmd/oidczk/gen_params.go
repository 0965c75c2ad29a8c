package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	zkconfig "github.com/zkopenid/oidczk/internal/config/zk"
	"github.com/zkopenid/oidczk/internal/core/packed"
	"github.com/zkopenid/oidczk/internal/core/pipeline"
)

var genParamsFlags struct {
	K          uint32
	ParamsPath string
}

// genParamsCmd 生成参考串
var genParamsCmd = &cobra.Command{
	Use:     "generate-parameters",
	Aliases: []string{"gen-params"},
	Short:   "生成 KZG 参考串",
	Long:    "生成 2^k+3 个点的 KZG 参考串（本地随机 tau，仅用于开发和测试）",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := zkOptions()
		k := opts.K
		if cmd.Flags().Changed("k") {
			k = genParamsFlags.K
		}
		if k < zkconfig.MinK || k > zkconfig.MaxK {
			return fmt.Errorf("k out of range: %d (allowed %d..%d)", k, zkconfig.MinK, zkconfig.MaxK)
		}
		hash, err := runner.GenParams(cmd.Context(), pipeline.GenParamsRequest{
			K:          k,
			ParamsPath: orDefault(genParamsFlags.ParamsPath, opts.ParamsPath()),
		})
		if err != nil {
			return err
		}
		pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("srs_hash: %s", packed.ToHex(hash[:]))
		return nil
	},
}

func init() {
	genParamsCmd.Flags().Uint32Var(&genParamsFlags.K, "k", 21, "参考串大小的对数")
	genParamsCmd.Flags().StringVar(&genParamsFlags.ParamsPath, "params-path", "", "参考串输出路径 (默认: <build_dir>/params.bin)")
}
