// Package config provides configuration provider interfaces.
package config

import (
	logconfig "github.com/zkopenid/oidczk/internal/config/log"
	zkconfig "github.com/zkopenid/oidczk/internal/config/zk"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetZK 获取证明引擎配置
	GetZK() *zkconfig.ZKOptions
}
