package nodes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/condcache/cache"
	"github.com/BaSui01/condcache/encoder"
	"github.com/BaSui01/condcache/internal/metrics"
)

// 节点类名，与宿主注册表中的键一致.
const (
	ClassCLIPTextEncodeCached = "CachingCLIPTextEncode"
)

// CLIPTextEncodeCached 单文本缓存编码节点.
// 键 = hash(text + modelID)；命中时原样返回缓存的条件化对.
type CLIPTextEncodeCached struct {
	cache     *cache.ConditioningCache
	logger    *zap.Logger
	collector *metrics.Collector
}

// NewCLIPTextEncodeCached 创建单文本缓存编码节点.
func NewCLIPTextEncodeCached(opts ...Option) *CLIPTextEncodeCached {
	o := applyOptions(opts)
	return &CLIPTextEncodeCached{
		cache:     cache.New(cache.DefaultLimit, o.logger),
		logger:    o.logger.With(zap.String("node", ClassCLIPTextEncodeCached)),
		collector: o.collector,
	}
}

// Spec 返回输入声明元数据.
func (n *CLIPTextEncodeCached) Spec() NodeSpec {
	return NodeSpec{
		Class:       ClassCLIPTextEncodeCached,
		DisplayName: "Caching CLIP Text Encode",
		Category:    "advanced/conditioning",
		Inputs: []InputSpec{
			clipInput(),
			textInput("text"),
			cacheLimitInput(),
		},
		Returns: []string{"CONDITIONING"},
	}
}

// Cache 返回节点持有的缓存，主要供宿主与测试观察状态.
func (n *CLIPTextEncodeCached) Cache() *cache.ConditioningCache { return n.cache }

// Encode 编码单段文本.cacheLimit 随每次调用传入并先于查找生效.
// 协作者的任何错误原样上抛，缓存保持不变.
func (n *CLIPTextEncodeCached) Encode(ctx context.Context, clip encoder.Encoder, text string, cacheLimit int) ([]encoder.Conditioning, error) {
	start := time.Now()
	n.cache.SetLimit(cacheLimit)

	id := clip.ModelID()
	key := cache.Key(id, text)

	if e, ok := n.cache.Lookup(key, id); ok {
		n.recordEncode("hit", start)
		return []encoder.Conditioning{{Cond: e.Cond, Output: e.Output}}, nil
	}

	tokens, err := clip.Tokenize(text)
	if err != nil {
		return nil, err
	}

	result, err := clip.EncodeFromTokens(ctx, tokens, encoder.EncodeOptions{ReturnPooled: true})
	if err != nil {
		return nil, err
	}

	e := &cache.Entry{
		ModelID: id,
		Texts:   []string{text},
		Cond:    result.Cond,
		Output:  &encoder.PooledOutput{Pooled: result.Pooled},
	}
	if evicted, ok := n.cache.Insert(key, e); ok {
		n.logger.Debug("evicted oldest conditioning", zap.String("key", evicted[:8]))
		if n.collector != nil {
			n.collector.RecordEviction(ClassCLIPTextEncodeCached)
		}
	}

	n.recordEncode("miss", start)
	return []encoder.Conditioning{{Cond: e.Cond, Output: e.Output}}, nil
}

func (n *CLIPTextEncodeCached) recordEncode(result string, start time.Time) {
	if n.collector == nil {
		return
	}
	n.collector.RecordEncode(ClassCLIPTextEncodeCached, result, time.Since(start))
	if result == "hit" {
		n.collector.RecordHit(ClassCLIPTextEncodeCached)
	} else {
		n.collector.RecordMiss(ClassCLIPTextEncodeCached)
	}
	n.collector.SetCacheSize(ClassCLIPTextEncodeCached, n.cache.Len())
}
