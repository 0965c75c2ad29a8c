package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/zkopenid/oidczk/internal/config"
	logconfig "github.com/zkopenid/oidczk/internal/config/log"
	zkconfig "github.com/zkopenid/oidczk/internal/config/zk"
	infralog "github.com/zkopenid/oidczk/internal/core/infrastructure/log"
	"github.com/zkopenid/oidczk/internal/core/infrastructure/metrics"
	"github.com/zkopenid/oidczk/internal/core/pipeline"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
	configiface "github.com/zkopenid/oidczk/pkg/interfaces/config"
	"github.com/zkopenid/oidczk/pkg/interfaces/infrastructure/log"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath  string // JSON 配置文件
	LogLevel    string // 日志级别
	LogFile     string // 日志文件，stdout/stderr 表示控制台
	MetricsFile string // 引擎指标 textfile 输出路径，为空不输出
}

var (
	globalFlags GlobalFlags
	provider    configiface.Provider
	logger      log.Logger
	runner      *pipeline.Pipeline
	recorder    *metrics.Recorder
)

// newEngine 构建证明引擎，测试中替换为桩引擎
var newEngine = func(logger log.Logger, opts *zkconfig.ZKOptions) zkproof.Engine {
	return zkproof.NewPlonkEngine(logger, opts.CompressKeys)
}

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "oidczk",
	Short: "OpenID ID token 参数编码与 PlonK 证明工具",
	Long: `oidczk - OpenID ID token 参数编码与 PlonK 证明工具

把紧凑格式的 ID token 解码，定位 iss/kid/sub/aud/nonce/iat/exp 的字节偏移，
输出 0x 十六进制的紧凑参数；ZK 模式额外附带验证密钥、公开输入与证明。

典型流程:
  oidczk gen-params --k 21
  oidczk gen-keys
  oidczk prove --pepper <hex>
  oidczk verify
  oidczk open-id-args
  oidczk open-id-zk-args --pepper <hex>`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		provider, err = config.LoadProvider(globalFlags.ConfigPath)
		if err != nil {
			return err
		}

		logOptions := *provider.GetLog()
		if globalFlags.LogLevel != "" {
			logOptions.Level = globalFlags.LogLevel
		}
		if globalFlags.LogFile != "" {
			logOptions.FilePath = globalFlags.LogFile
			logOptions.ToConsole = globalFlags.LogFile == "stdout" || globalFlags.LogFile == "stderr"
		}
		base, err := infralog.New(logconfig.NewFromOptions(&logOptions))
		if err != nil {
			return fmt.Errorf("初始化日志: %w", err)
		}
		logger = base.With("run_id", uuid.NewString(), "command", cmd.Name())
		infralog.SetLogger(logger)

		zkOptions := provider.GetZK()
		if err := zkOptions.Validate(); err != nil {
			return err
		}
		return buildRunner(zkOptions)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if globalFlags.MetricsFile != "" && recorder != nil {
			if err := recorder.WriteTextfile(globalFlags.MetricsFile); err != nil {
				logger.Warnf("写出指标失败: %v", err)
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// buildRunner 用 fx 组装引擎、指标与编排器
func buildRunner(zkOptions *zkconfig.ZKOptions) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() log.Logger { return logger },
			func() *zkconfig.ZKOptions { return zkOptions },
			newEngine,
			pipeline.New,
		),
		metrics.Module(),
		fx.Decorate(metrics.Instrument),
		fx.Populate(&runner, &recorder),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("组装命令依赖: %w", err)
	}
	return nil
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "JSON 配置文件路径")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error|fatal (默认: info)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogFile, "log-file", "", "日志输出: stderr|stdout|<文件路径> (默认: stderr)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.MetricsFile, "metrics-file", "", "命令结束后写出引擎指标 (prometheus textfile 格式)")

	rootCmd.AddCommand(genParamsCmd)
	rootCmd.AddCommand(genKeysCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(plainArgsCmd)
	rootCmd.AddCommand(zkArgsCmd)
}

// orDefault 标志为空时使用配置中的默认路径
func orDefault(flag, def string) string {
	if flag != "" {
		return flag
	}
	return def
}

// zkOptions 当前生效的证明引擎配置
func zkOptions() *zkconfig.ZKOptions {
	return provider.GetZK()
}

// keyPaths 解析证明密钥与验证密钥路径
func keyPaths(pk, vc string) zkproof.KeyPaths {
	opts := zkOptions()
	return zkproof.KeyPaths{
		ProvingKey:   orDefault(pk, opts.ProvingKeyPath()),
		VerifyingKey: orDefault(vc, opts.VerifyingKeyPath()),
	}
}
