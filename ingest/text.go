// Package ingest 把原始 CSV 数据集变成带向量的客户/商品记录：
// 解析 → 拼接文本特征 → 生成向量 → 经 RepositoryWriter 落库。
package ingest

import (
	"fmt"
	"strings"

	"github.com/rushteam/shoprec/core"
)

// ParseStringList 解析形如 ['Books', 'Fiction'] 或 ["P123","P456"] 的
// 字符串列表字面量（原始数据集的存储格式）。
//
// 这是一个严格的结构化解析器：只接受方括号包裹、引号包裹元素、
// 逗号分隔的形态，绝不把输入当代码求值。
// 空列表 "[]" 合法；非法形态返回 INVALID_INPUT 错误，由调用方决定
// 是否按空列表降级（与原始数据管线的容错行为一致）。
func ParseStringList(text string) ([]string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, badList(text, "missing brackets")
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, nil
	}

	out := make([]string, 0, 4)
	rest := inner
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil, badList(text, "trailing comma")
		}

		quote := rest[0]
		if quote != '\'' && quote != '"' {
			return nil, badList(text, "element not quoted")
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return nil, badList(text, "unterminated quote")
		}
		out = append(out, rest[1:1+end])

		rest = strings.TrimSpace(rest[2+end:])
		if rest == "" {
			return out, nil
		}
		if !strings.HasPrefix(rest, ",") {
			return nil, badList(text, "missing comma between elements")
		}
		rest = rest[1:]
	}
}

func badList(text, reason string) error {
	return core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput,
		fmt.Sprintf("ingest: malformed list %q: %s", text, reason))
}

// CustomerText 把客户的浏览与购买历史拼接为一段用于 embedding 的文本。
// 例如："Books Biography Brand C Biography Comics"
func CustomerText(c *core.Customer) string {
	parts := make([]string, 0, len(c.BrowsingHistory)+len(c.PurchaseHistory))
	parts = append(parts, c.BrowsingHistory...)
	parts = append(parts, c.PurchaseHistory...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ProductText 把商品的类目/品牌/相似商品拼接为一段用于 embedding 的文本。
func ProductText(p *core.Product) string {
	parts := make([]string, 0, 3+len(p.SimilarProducts))
	parts = append(parts, p.Category, p.Subcategory, p.Brand)
	parts = append(parts, p.SimilarProducts...)
	return strings.TrimSpace(strings.Join(parts, " "))
}
