package cache

import (
	"go.uber.org/zap"

	"github.com/BaSui01/condcache/encoder"
)

// DefaultLimit 缓存上限默认值.
const DefaultLimit = 10

// Entry 单条缓存记录.
type Entry struct {
	// ModelID 计算该记录时的模型实例标识
	ModelID encoder.ModelID
	// Texts 记录对应的原始文本字段，按键拼接顺序排列
	Texts []string
	// Cond 嵌入张量
	Cond encoder.Tensor
	// Output 辅助输出；命中时 Flux 节点会原地改写其 Guidance
	Output *encoder.PooledOutput
}

// Stats 缓存计数.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// ConditioningCache 按插入顺序排列的有界缓存.
//
// 不加锁：宿主保证同一节点的调用严格串行.
type ConditioningCache struct {
	entries map[string]*Entry
	order   []string // 插入顺序，队首最旧
	limit   int
	stats   Stats
	logger  *zap.Logger
}

// New 创建缓存.limit 非正时取 DefaultLimit；logger 为 nil 时静默.
func New(limit int, logger *zap.Logger) *ConditioningCache {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConditioningCache{
		entries: make(map[string]*Entry),
		limit:   limit,
		logger:  logger.With(zap.String("component", "conditioning_cache")),
	}
}

// SetLimit 更新缓存上限.上限随每次调用传入；调低不主动清理已有的
// 超额记录，只影响下一次未命中的淘汰判断.
func (c *ConditioningCache) SetLimit(n int) {
	if n == c.limit {
		return
	}
	c.logger.Debug("cache limit updated", zap.Int("old", c.limit), zap.Int("new", n))
	c.limit = n
}

// Limit 返回当前上限.
func (c *ConditioningCache) Limit() int { return c.limit }

// Len 返回当前记录数.
func (c *ConditioningCache) Len() int { return len(c.entries) }

// Lookup 查找键对应的记录.命中要求键存在且记录的模型标识与当前一致；
// 模型标识已参与键的计算，这一复核只会与键匹配同真同假，保留它是为了
// 与上游行为对齐.
func (c *ConditioningCache) Lookup(key string, id encoder.ModelID) (*Entry, bool) {
	e, ok := c.entries[key]
	if !ok || e.ModelID != id {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	c.logger.Debug("cache hit", zap.String("key", shortKey(key)))
	return e, true
}

// Insert 在键下写入记录，并在插入前大小已达上限时淘汰最旧的一个键.
// 判断使用插入前的大小，因此映射可能短暂持有上限 +1 条记录；
// 返回被淘汰的键（若有）.
func (c *ConditioningCache) Insert(key string, e *Entry) (evicted string, ok bool) {
	before := len(c.entries)

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = e
	c.stats.Size = len(c.entries)

	if before >= c.limit {
		evicted, ok = c.evictOldest()
	}
	return evicted, ok
}

// evictOldest 移除插入最早的记录.
func (c *ConditioningCache) evictOldest() (string, bool) {
	if len(c.order) == 0 {
		return "", false
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
	c.stats.Evictions++
	c.stats.Size = len(c.entries)
	c.logger.Debug("evicted oldest entry", zap.String("key", shortKey(oldest)))
	return oldest, true
}

// shortKey 截取键前缀用于日志.
func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}

// Stats 返回计数快照.
func (c *ConditioningCache) Stats() Stats {
	s := c.stats
	s.Size = len(c.entries)
	return s
}
