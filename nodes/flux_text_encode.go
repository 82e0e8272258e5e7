package nodes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/condcache/cache"
	"github.com/BaSui01/condcache/encoder"
	"github.com/BaSui01/condcache/internal/metrics"
)

const (
	ClassFluxTextEncodeCached = "CachingCLIPTextEncodeFlux"
	ClassFluxTextEncode       = "CLIPTextEncodeFlux"

	// t5xxl 分词结果并入 clip_l 分词结果时使用的子键.
	t5xxlTokenKey = "t5xxl"
)

// FluxTextEncodeCached 双文本缓存编码节点（Flux）.
// 键 = hash(clip_l + t5xxl + modelID)；guidance 属于元数据，不参与键，
// 命中时在缓存记录上原地改写.
type FluxTextEncodeCached struct {
	cache     *cache.ConditioningCache
	logger    *zap.Logger
	collector *metrics.Collector
}

// NewFluxTextEncodeCached 创建双文本缓存编码节点.
func NewFluxTextEncodeCached(opts ...Option) *FluxTextEncodeCached {
	o := applyOptions(opts)
	return &FluxTextEncodeCached{
		cache:     cache.New(cache.DefaultLimit, o.logger),
		logger:    o.logger.With(zap.String("node", ClassFluxTextEncodeCached)),
		collector: o.collector,
	}
}

// Spec 返回输入声明元数据.
func (n *FluxTextEncodeCached) Spec() NodeSpec {
	return NodeSpec{
		Class:       ClassFluxTextEncodeCached,
		DisplayName: "Caching CLIP Text Encode for FLUX",
		Category:    "advanced/conditioning/flux",
		Inputs: []InputSpec{
			clipInput(),
			textInput("clip_l"),
			textInput("t5xxl"),
			cacheLimitInput(),
			guidanceInput(),
		},
		Returns: []string{"CONDITIONING"},
	}
}

// Cache 返回节点持有的缓存.
func (n *FluxTextEncodeCached) Cache() *cache.ConditioningCache { return n.cache }

// Encode 编码双段文本.命中时不触碰协作者，只将 guidance 改写为本次
// 调用的值后返回；未命中时两段文本分别分词，t5xxl 的结果以子键并入
// clip_l 的结果再整体编码.
func (n *FluxTextEncodeCached) Encode(ctx context.Context, clip encoder.Encoder, clipL, t5xxl string, guidance float64, cacheLimit int) ([]encoder.Conditioning, error) {
	start := time.Now()
	n.cache.SetLimit(cacheLimit)

	id := clip.ModelID()
	key := cache.Key(id, clipL, t5xxl)

	if e, ok := n.cache.Lookup(key, id); ok {
		e.Output.Guidance = guidance
		e.Output.HasGuidance = true
		n.recordEncode("hit", start)
		return []encoder.Conditioning{{Cond: e.Cond, Output: e.Output}}, nil
	}

	tokens, err := clip.Tokenize(clipL)
	if err != nil {
		return nil, err
	}
	t5Tokens, err := clip.Tokenize(t5xxl)
	if err != nil {
		return nil, err
	}
	tokens.Merge(t5Tokens, t5xxlTokenKey)

	result, err := clip.EncodeFromTokens(ctx, tokens, encoder.EncodeOptions{ReturnPooled: true})
	if err != nil {
		return nil, err
	}

	e := &cache.Entry{
		ModelID: id,
		Texts:   []string{clipL, t5xxl},
		Cond:    result.Cond,
		Output: &encoder.PooledOutput{
			Pooled:      result.Pooled,
			Guidance:    guidance,
			HasGuidance: true,
		},
	}
	if evicted, ok := n.cache.Insert(key, e); ok {
		n.logger.Debug("evicted oldest conditioning", zap.String("key", evicted[:8]))
		if n.collector != nil {
			n.collector.RecordEviction(ClassFluxTextEncodeCached)
		}
	}

	n.recordEncode("miss", start)
	return []encoder.Conditioning{{Cond: e.Cond, Output: e.Output}}, nil
}

func (n *FluxTextEncodeCached) recordEncode(result string, start time.Time) {
	if n.collector == nil {
		return
	}
	n.collector.RecordEncode(ClassFluxTextEncodeCached, result, time.Since(start))
	if result == "hit" {
		n.collector.RecordHit(ClassFluxTextEncodeCached)
	} else {
		n.collector.RecordMiss(ClassFluxTextEncodeCached)
	}
	n.collector.SetCacheSize(ClassFluxTextEncodeCached, n.cache.Len())
}

// FluxTextEncode 单槽简化变体：只保留上一次调用的原始输入与结果，
// 按相等比较，无哈希、无上限、无 cache_limit 输入.
//
// 命中时返回缓存的输出，guidance 不更新，与上游节点行为一致.
type FluxTextEncode struct {
	prevModelID encoder.ModelID
	prevClipL   string
	prevT5xxl   string
	prevCond    encoder.Tensor
	prevOutput  *encoder.PooledOutput
	primed      bool

	logger    *zap.Logger
	collector *metrics.Collector
}

// NewFluxTextEncode 创建单槽简化编码节点.
func NewFluxTextEncode(opts ...Option) *FluxTextEncode {
	o := applyOptions(opts)
	return &FluxTextEncode{
		logger:    o.logger.With(zap.String("node", ClassFluxTextEncode)),
		collector: o.collector,
	}
}

// Spec 返回输入声明元数据.
func (n *FluxTextEncode) Spec() NodeSpec {
	return NodeSpec{
		Class:       ClassFluxTextEncode,
		DisplayName: "CLIP Text Encode for FLUX",
		Category:    "advanced/conditioning/flux",
		Inputs: []InputSpec{
			clipInput(),
			textInput("clip_l"),
			textInput("t5xxl"),
			guidanceInput(),
		},
		Returns: []string{"CONDITIONING"},
	}
}

// Encode 编码双段文本，仅与上一次调用的输入做相等比较.
// 模型实例更换同样视为失效.
func (n *FluxTextEncode) Encode(ctx context.Context, clip encoder.Encoder, clipL, t5xxl string, guidance float64) ([]encoder.Conditioning, error) {
	start := time.Now()
	id := clip.ModelID()

	if n.primed && n.prevClipL == clipL && n.prevT5xxl == t5xxl && n.prevModelID == id {
		n.recordEncode("hit", start)
		return []encoder.Conditioning{{Cond: n.prevCond, Output: n.prevOutput}}, nil
	}

	tokens, err := clip.Tokenize(clipL)
	if err != nil {
		return nil, err
	}
	t5Tokens, err := clip.Tokenize(t5xxl)
	if err != nil {
		return nil, err
	}
	tokens.Merge(t5Tokens, t5xxlTokenKey)

	result, err := clip.EncodeFromTokens(ctx, tokens, encoder.EncodeOptions{ReturnPooled: true})
	if err != nil {
		return nil, err
	}

	n.prevModelID = id
	n.prevClipL = clipL
	n.prevT5xxl = t5xxl
	n.prevCond = result.Cond
	n.prevOutput = &encoder.PooledOutput{
		Pooled:      result.Pooled,
		Guidance:    guidance,
		HasGuidance: true,
	}
	n.primed = true

	n.recordEncode("miss", start)
	return []encoder.Conditioning{{Cond: n.prevCond, Output: n.prevOutput}}, nil
}

func (n *FluxTextEncode) recordEncode(result string, start time.Time) {
	if n.collector == nil {
		return
	}
	n.collector.RecordEncode(ClassFluxTextEncode, result, time.Since(start))
	if result == "hit" {
		n.collector.RecordHit(ClassFluxTextEncode)
	} else {
		n.collector.RecordMiss(ClassFluxTextEncode)
	}
}
