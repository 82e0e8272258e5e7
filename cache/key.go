package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/BaSui01/condcache/encoder"
)

// Key 计算缓存键：按声明顺序拼接各文本字段字节，再拼接模型标识，
// 取 SHA-256 摘要的十六进制表示.
//
// 字段顺序固定：单文本为 text + modelID；双文本为 clip_l + t5xxl + modelID.
// 相同输入必得相同键；任一字段不同则键不同（摘要碰撞概率可忽略）.
func Key(id encoder.ModelID, texts ...string) string {
	h := sha256.New()
	for _, t := range texts {
		h.Write([]byte(t))
	}
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}
