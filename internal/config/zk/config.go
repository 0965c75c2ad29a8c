package zk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	configtypes "github.com/zkopenid/oidczk/pkg/types"
)

// 环境变量覆盖
const (
	EnvBuildDir     = "OIDCZK_BUILD_DIR"
	EnvK            = "OIDCZK_K"
	EnvCompressKeys = "OIDCZK_COMPRESS_KEYS"
)

// ZKOptions 证明引擎配置
type ZKOptions struct {
	BuildDir     string `json:"build_dir"`
	K            uint32 `json:"k"`
	CompressKeys bool   `json:"compress_keys"`
	Curve        string `json:"curve"`  // 目前只支持 bn254
	Scheme       string `json:"scheme"` // 目前只支持 plonk

	// envErr 无法解析的环境变量，由 Validate 报告
	envErr error
}

// Config 提供访问选项
type Config struct {
	options *ZKOptions
}

// New 创建配置，支持环境变量覆盖
// 环境变量：
//
//	OIDCZK_BUILD_DIR
//	OIDCZK_K
//	OIDCZK_COMPRESS_KEYS (true|false)
func New(userConfig *configtypes.UserZKConfig) *Config {
	opts := &ZKOptions{
		BuildDir:     defaultBuildDir,
		K:            defaultK,
		CompressKeys: defaultCompressKeys,
		Curve:        defaultCurve,
		Scheme:       defaultScheme,
	}

	if userConfig != nil {
		if userConfig.BuildDir != nil {
			opts.BuildDir = *userConfig.BuildDir
		}
		if userConfig.K != nil {
			opts.K = *userConfig.K
		}
		if userConfig.CompressKeys != nil {
			opts.CompressKeys = *userConfig.CompressKeys
		}
	}

	if v := os.Getenv(EnvBuildDir); v != "" {
		opts.BuildDir = v
	}
	var envErrs []error
	if v := os.Getenv(EnvK); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			opts.K = uint32(n)
		} else {
			envErrs = append(envErrs, fmt.Errorf("invalid %s=%q: %w", EnvK, v, err))
		}
	}
	if v := os.Getenv(EnvCompressKeys); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.CompressKeys = b
		} else {
			envErrs = append(envErrs, fmt.Errorf("invalid %s=%q: %w", EnvCompressKeys, v, err))
		}
	}
	opts.envErr = errors.Join(envErrs...)

	return &Config{options: opts}
}

// GetOptions 返回选项
func (c *Config) GetOptions() *ZKOptions {
	return c.options
}

// Validate 校验配置
func (o *ZKOptions) Validate() error {
	if o.envErr != nil {
		return o.envErr
	}
	if o.K < MinK || o.K > MaxK {
		return fmt.Errorf("k out of range: %d (allowed %d..%d)", o.K, MinK, MaxK)
	}
	if o.Curve != defaultCurve {
		return fmt.Errorf("unsupported curve: %s", o.Curve)
	}
	if o.Scheme != defaultScheme {
		return fmt.Errorf("unsupported proving scheme: %s", o.Scheme)
	}
	return nil
}

func (o *ZKOptions) path(name string) string {
	return filepath.Join(o.BuildDir, name)
}

// ParamsPath SRS 参数文件路径
func (o *ZKOptions) ParamsPath() string { return o.path(paramsFile) }

// ProvingKeyPath proving key 文件路径
func (o *ZKOptions) ProvingKeyPath() string { return o.path(provingKeyFile) }

// VerifyingKeyPath verifying key 文件路径
func (o *ZKOptions) VerifyingKeyPath() string { return o.path(verifyingKeyFile) }

// ProofPath 证明文件路径
func (o *ZKOptions) ProofPath() string { return o.path(proofFile) }

// PublicInputPath 公开输入文件路径
func (o *ZKOptions) PublicInputPath() string { return o.path(publicInputFile) }

// ContractInputPath 合约调用输入文件路径
func (o *ZKOptions) ContractInputPath() string { return o.path(contractInputFile) }

// IDTokenPath ID token 文件路径
func (o *ZKOptions) IDTokenPath() string { return o.path(idTokenFile) }

// PlainOutputPath 普通参数输出路径
func (o *ZKOptions) PlainOutputPath() string { return o.path(plainOutputFile) }

// ZKOutputPath ZK 参数输出路径
func (o *ZKOptions) ZKOutputPath() string { return o.path(zkOutputFile) }

// ZKConfigsPath zkConfigs.json 路径
func (o *ZKOptions) ZKConfigsPath() string { return o.path(zkConfigsFile) }
