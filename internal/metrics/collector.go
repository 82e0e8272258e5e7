// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 编码节点指标收集器
type Collector struct {
	// 编码指标
	encodeTotal    *prometheus.CounterVec
	encodeDuration *prometheus.HistogramVec

	// 缓存指标
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheEvictions *prometheus.CounterVec
	cacheSize      *prometheus.GaugeVec
}

var (
	mu         sync.Mutex
	collectors = make(map[string]*Collector)
)

// For 返回 namespace 对应的收集器，同名共享，避免 promauto 重复注册.
func For(namespace string) *Collector {
	mu.Lock()
	defer mu.Unlock()

	if c, ok := collectors[namespace]; ok {
		return c
	}
	c := newCollector(namespace)
	collectors[namespace] = c
	return c
}

// newCollector 创建并注册指标
func newCollector(namespace string) *Collector {
	c := &Collector{}

	c.encodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_total",
			Help:      "Total number of encode invocations",
		},
		[]string{"node_class", "result"},
	)

	c.encodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Encode invocation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node_class"},
	)

	c.cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of conditioning cache hits",
		},
		[]string{"node_class"},
	)

	c.cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of conditioning cache misses",
		},
		[]string{"node_class"},
	)

	c.cacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of conditioning cache evictions",
		},
		[]string{"node_class"},
	)

	c.cacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size",
			Help:      "Current number of conditioning cache entries",
		},
		[]string{"node_class"},
	)

	return c
}

// =============================================================================
// 🎯 记录方法
// =============================================================================

// RecordEncode 记录一次编码调用
func (c *Collector) RecordEncode(nodeClass, result string, duration time.Duration) {
	c.encodeTotal.WithLabelValues(nodeClass, result).Inc()
	c.encodeDuration.WithLabelValues(nodeClass).Observe(duration.Seconds())
}

// RecordHit 记录缓存命中
func (c *Collector) RecordHit(nodeClass string) {
	c.cacheHits.WithLabelValues(nodeClass).Inc()
}

// RecordMiss 记录缓存未命中
func (c *Collector) RecordMiss(nodeClass string) {
	c.cacheMisses.WithLabelValues(nodeClass).Inc()
}

// RecordEviction 记录缓存淘汰
func (c *Collector) RecordEviction(nodeClass string) {
	c.cacheEvictions.WithLabelValues(nodeClass).Inc()
}

// SetCacheSize 更新缓存大小
func (c *Collector) SetCacheSize(nodeClass string, size int) {
	c.cacheSize.WithLabelValues(nodeClass).Set(float64(size))
}
