// Package metrics 提供证明引擎的耗时与结果指标
//
// 指标注册在独立的 prometheus.Registry 中，命令结束时可写成
// node_exporter textfile 格式。
package metrics

import (
	"go.uber.org/fx"
)

// Module 返回 metrics 模块的 fx.Option
//
// 提供：
// - *Recorder: 引擎指标记录器
//
// 使用方在根作用域通过 fx.Decorate(Instrument) 包装 zkproof.Engine。
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(NewRecorder),
	)
}
