// Package vector 提供向量编解码与余弦相似度计算。
//
// 存储层把向量落成逗号分隔的十进制文本（原始表结构约定），
// 本包负责文本与 []float64 之间的互转，并定义"无向量"哨兵：
// 空文本 <-> nil 向量。
package vector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rushteam/shoprec/core"
)

// Decode 将逗号分隔的十进制文本解析为向量。
// 空/纯空白文本返回 nil（无向量哨兵）。
// 任一 token 非法时返回 CORRUPT_EMBEDDING 错误，不做静默纠偏，
// 由调用方决定跳过该实体还是降级处理。
func Decode(text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	parts := strings.Split(text, ",")
	out := make([]float64, 0, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleVector, core.ErrorCodeCorruptEmbedding,
				fmt.Sprintf("vector: malformed token %q at index %d", part, i))
		}
		out = append(out, f)
	}
	return out, nil
}

// Encode 将向量编码为逗号分隔文本，是 Decode 的逆操作。
// 空向量编码为空字符串。
func Encode(vec []float64) string {
	if len(vec) == 0 {
		return ""
	}
	parts := make([]string, len(vec))
	for i, f := range vec {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
