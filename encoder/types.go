// Package encoder 定义文本编码协作者的统一接口与条件化数据类型.
package encoder

import (
	"context"

	"github.com/google/uuid"
)

// ModelID 是已加载模型实例的不透明标识.
// 宿主保证同一实例生命周期内稳定，不同实例之间互不相同.
type ModelID string

// NewModelID 为新加载的模型实例分配标识.
func NewModelID() ModelID {
	return ModelID(uuid.NewString())
}

// Tensor 表示编码产出的嵌入张量载荷.
// 本库不解释其内容，只原样缓存与传递.
type Tensor []float32

// Tokens 表示分词结果：子编码器名称 → token id 列表.
// Flux 双文本场景下，第二段文本的 "t5xxl" 子键会被合并进第一段的结果.
type Tokens map[string][]int

// Merge 将 other 中 name 子键的 token 列表并入 t.
func (t Tokens) Merge(other Tokens, name string) {
	t[name] = other[name]
}

// Clone 返回 t 的浅拷贝（token 列表共享底层数组）.
func (t Tokens) Clone() Tokens {
	out := make(Tokens, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// PooledOutput 是伴随嵌入返回的固定形状辅助输出.
type PooledOutput struct {
	// Pooled 池化向量
	Pooled Tensor `json:"pooled_output,omitempty"`
	// Guidance 条件强度标量，仅 Flux 系列节点使用
	Guidance float64 `json:"guidance,omitempty"`
	// HasGuidance 标记 Guidance 是否被赋值
	HasGuidance bool `json:"-"`
}

// Conditioning 是节点输出槽的条件化对（嵌入 + 辅助输出）.
type Conditioning struct {
	Cond   Tensor        `json:"cond"`
	Output *PooledOutput `json:"output"`
}

// EncodeOptions 控制 EncodeFromTokens 的返回内容.
type EncodeOptions struct {
	// ReturnPooled 请求池化输出
	ReturnPooled bool
}

// EncodeResult 是一次编码调用的完整结果.
type EncodeResult struct {
	Cond   Tensor
	Pooled Tensor
}

// Encoder 定义 CLIP 风格文本编码协作者的接口.
// 实现由宿主提供；本库只做调用与结果缓存.
//
// Tokenize 对同一实例是纯函数；EncodeFromTokens 对固定分词和固定模型
// 是确定性的，也是主要开销所在.任何错误原样上抛，本层不做恢复.
type Encoder interface {
	// ModelID 返回当前实例的标识.
	ModelID() ModelID

	// Tokenize 将文本切分为各子编码器的 token 列表.
	Tokenize(text string) (Tokens, error)

	// EncodeFromTokens 由分词结果计算嵌入，是阻塞的模型推理调用.
	EncodeFromTokens(ctx context.Context, tokens Tokens, opts EncodeOptions) (*EncodeResult, error)
}
