// MockClip 编码协作者的测试模拟实现.
//
// 输出确定性张量，支持错误注入与调用计数.
package mocks

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/condcache/encoder"
)

// --- Clip 结构 ---

// Clip 是 encoder.Encoder 的模拟实现.
// 张量内容由输入 token 确定性推导，同样的文本必得同样的结果.
type Clip struct {
	id  encoder.ModelID
	dim int

	// 错误注入
	tokenizeErr error
	encodeErr   error

	// 调用计数
	tokenizeCalls int
	encodeCalls   int

	// 最近一次编码收到的分词结果
	lastTokens encoder.Tokens

	// 可选的 tiktoken 分词；未设置时退化为 rune 级分词（离线可用）
	enc *tiktoken.Tiktoken
}

var _ encoder.Encoder = (*Clip)(nil)

// --- 构造函数和 Builder 方法 ---

// NewClip 创建新的 Clip，自动分配模型标识.
func NewClip() *Clip {
	return &Clip{
		id:  encoder.NewModelID(),
		dim: 8,
	}
}

// WithModelID 覆盖模型标识
func (c *Clip) WithModelID(id encoder.ModelID) *Clip {
	c.id = id
	return c
}

// WithDim 设置输出张量维度
func (c *Clip) WithDim(dim int) *Clip {
	c.dim = dim
	return c
}

// WithTokenizeError 注入分词错误
func (c *Clip) WithTokenizeError(err error) *Clip {
	c.tokenizeErr = err
	return c
}

// WithEncodeError 注入编码错误
func (c *Clip) WithEncodeError(err error) *Clip {
	c.encodeErr = err
	return c
}

// WithTiktoken 启用 tiktoken 分词.编码数据可能需要下载，测试中
// 一般不启用，示例程序按需使用.
func (c *Clip) WithTiktoken(encoding string) error {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return fmt.Errorf("init tiktoken encoding %s: %w", encoding, err)
	}
	c.enc = enc
	return nil
}

// --- encoder.Encoder 实现 ---

// ModelID 返回模型标识.
func (c *Clip) ModelID() encoder.ModelID { return c.id }

// Tokenize 分词.两个子键返回同一 token 列表，便于双文本合并.
func (c *Clip) Tokenize(text string) (encoder.Tokens, error) {
	c.tokenizeCalls++
	if c.tokenizeErr != nil {
		return nil, c.tokenizeErr
	}

	var ids []int
	if c.enc != nil {
		ids = c.enc.Encode(text, nil, nil)
	} else {
		for _, r := range text {
			ids = append(ids, int(r))
		}
	}
	return encoder.Tokens{"l": ids, "t5xxl": ids}, nil
}

// EncodeFromTokens 由 token 确定性生成张量.
func (c *Clip) EncodeFromTokens(_ context.Context, tokens encoder.Tokens, opts encoder.EncodeOptions) (*encoder.EncodeResult, error) {
	c.encodeCalls++
	if c.encodeErr != nil {
		return nil, c.encodeErr
	}
	c.lastTokens = tokens.Clone()

	result := &encoder.EncodeResult{
		Cond: c.tensorFor(tokens, 0),
	}
	if opts.ReturnPooled {
		result.Pooled = c.tensorFor(tokens, 1)
	}
	return result, nil
}

// --- 计数与重置 ---

// TokenizeCalls 返回 Tokenize 调用次数.
func (c *Clip) TokenizeCalls() int { return c.tokenizeCalls }

// EncodeCalls 返回 EncodeFromTokens 调用次数.
func (c *Clip) EncodeCalls() int { return c.encodeCalls }

// LastTokens 返回最近一次编码收到的分词结果.
func (c *Clip) LastTokens() encoder.Tokens { return c.lastTokens }

// Reset 清零调用计数.
func (c *Clip) Reset() {
	c.tokenizeCalls = 0
	c.encodeCalls = 0
}

// tensorFor 由 token 内容、模型标识与盐值推导确定性张量.
func (c *Clip) tensorFor(tokens encoder.Tokens, salt uint64) encoder.Tensor {
	h := fnv.New64a()
	h.Write([]byte(c.id))
	for _, name := range []string{"l", "t5xxl"} {
		h.Write([]byte(name))
		for _, id := range tokens[name] {
			fmt.Fprintf(h, "%d,", id)
		}
	}
	seed := h.Sum64() + salt

	out := make(encoder.Tensor, c.dim)
	for i := range out {
		seed = seed*6364136223846793005 + 1442695040888963407
		out[i] = float32(seed%1000) / 1000.0
	}
	return out
}
