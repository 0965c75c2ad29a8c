package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 操作结果标签
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Recorder 引擎指标记录器
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder 创建记录器并注册指标
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oidczk",
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Proving engine operations by result",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "oidczk",
				Subsystem: "engine",
				Name:      "operation_duration_seconds",
				Help:      "Proving engine operation latency",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"op"},
		),
	}
	r.registry.MustRegister(r.operations, r.duration)
	return r
}

// Observe 记录一次操作
func (r *Recorder) Observe(op, result string, elapsed time.Duration) {
	r.operations.WithLabelValues(op, result).Inc()
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// WriteTextfile 以 textfile 格式写出全部指标
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
