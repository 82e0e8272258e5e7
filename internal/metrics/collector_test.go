package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var collectorNamespaceSeq uint64

func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("condcache_test_%d", seq)
}

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestFor_SharedByNamespace(t *testing.T) {
	ns := nextTestNamespace()

	c1 := For(ns)
	c2 := For(ns)
	assert.Same(t, c1, c2)

	c3 := For(nextTestNamespace())
	assert.NotSame(t, c1, c3)
}

func TestCollector_RecordEncode(t *testing.T) {
	c := For(nextTestNamespace())

	c.RecordEncode("CachingCLIPTextEncodeFlux", "miss", 25*time.Millisecond)
	c.RecordEncode("CachingCLIPTextEncodeFlux", "hit", time.Millisecond)
	c.RecordEncode("CachingCLIPTextEncodeFlux", "hit", time.Millisecond)

	hit := c.encodeTotal.WithLabelValues("CachingCLIPTextEncodeFlux", "hit")
	miss := c.encodeTotal.WithLabelValues("CachingCLIPTextEncodeFlux", "miss")
	assert.Equal(t, 2.0, testutil.ToFloat64(hit))
	assert.Equal(t, 1.0, testutil.ToFloat64(miss))
}

func TestCollector_CacheCounters(t *testing.T) {
	c := For(nextTestNamespace())

	c.RecordHit("n")
	c.RecordMiss("n")
	c.RecordMiss("n")
	c.RecordEviction("n")
	c.SetCacheSize("n", 7)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheHits.WithLabelValues("n")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheMisses.WithLabelValues("n")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheEvictions.WithLabelValues("n")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.cacheSize.WithLabelValues("n")))
}
