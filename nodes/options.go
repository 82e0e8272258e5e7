package nodes

import (
	"go.uber.org/zap"

	"github.com/BaSui01/condcache/internal/metrics"
)

// Option 配置节点实例.
type Option func(*nodeOptions)

type nodeOptions struct {
	logger    *zap.Logger
	collector *metrics.Collector
}

// WithLogger 设置节点日志器.
func WithLogger(logger *zap.Logger) Option {
	return func(o *nodeOptions) {
		o.logger = logger
	}
}

// WithMetrics 按 namespace 启用 Prometheus 指标采集.
// 同名 namespace 的节点共享同一组指标.
func WithMetrics(namespace string) Option {
	return func(o *nodeOptions) {
		o.collector = metrics.For(namespace)
	}
}

func applyOptions(opts []Option) nodeOptions {
	o := nodeOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
