// Package config 组装应用配置
//
// 配置来源优先级：命令行参数 > 环境变量 > JSON 配置文件 > 默认值。
// 命令行参数由 cmd 层在拿到 Provider 之后覆盖。
package config

import (
	"encoding/json"
	"fmt"
	"os"

	logconfig "github.com/zkopenid/oidczk/internal/config/log"
	zkconfig "github.com/zkopenid/oidczk/internal/config/zk"
	"github.com/zkopenid/oidczk/pkg/interfaces/config"
	"github.com/zkopenid/oidczk/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig

	logOptions *logconfig.LogOptions
	zkOptions  *zkconfig.ZKOptions
}

// NewProvider 创建配置提供者，appConfig 可以为 nil
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig:  appConfig,
		logOptions: logconfig.New(appConfig.Log).GetOptions(),
		zkOptions:  zkconfig.New(appConfig.ZK).GetOptions(),
	}
}

// LoadProvider 从 JSON 文件加载配置，path 为空时只使用默认值和环境变量
func LoadProvider(path string) (config.Provider, error) {
	appConfig, err := LoadAppConfig(path)
	if err != nil {
		return nil, err
	}
	return NewProvider(appConfig), nil
}

// LoadAppConfig 读取并解析 JSON 配置文件
func LoadAppConfig(path string) (*types.AppConfig, error) {
	appConfig := &types.AppConfig{}
	if path == "" {
		return appConfig, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := json.Unmarshal(data, appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}
	return appConfig, nil
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	return p.logOptions
}

// GetZK 获取证明引擎配置
func (p *Provider) GetZK() *zkconfig.ZKOptions {
	return p.zkOptions
}
