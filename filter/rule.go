package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的业务规则过滤器。
// 表达式对 product / customer / label 求值，结果为 false 的商品被过滤。
//
// 示例：
//   - `product.season == customer.season` → 只保留应季商品
//   - `product.geography == customer.location` → 地域匹配
//   - `product.rating >= 3.0` → 低分商品剔除
//
// 注意：价格可负担规则请使用 PriceFilter（固定策略），
// RuleFilter 面向可按场景配置的附加规则。
type RuleFilter struct {
	// Expr CEL 表达式，空表达式不过滤任何商品
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

var _ Filter = (*RuleFilter)(nil)
