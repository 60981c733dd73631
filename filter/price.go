package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// AffordabilityRatio 是价格可负担过滤的固定策略常数：
// 保留 price <= avg_order_value * 1.5 的商品。
// 这是业务策略而非运行时配置，需要不同倍率时构造新的 PriceFilter 实例。
const AffordabilityRatio = 1.5

// PriceFilter 是价格可负担过滤器：
// 剔除价格超出客户平均订单金额 Ratio 倍的商品。
//
// 边界语义：
//   - 商品价格缺失（<0）时过滤（fail-closed）
//   - 客户画像缺失时过滤（没有基准值无法判定）
//   - 输入顺序保持不变，不改写任何商品字段
type PriceFilter struct {
	// Ratio 价格倍率，<=0 时使用 AffordabilityRatio 默认值
	Ratio float64
}

func (f *PriceFilter) Name() string {
	return "filter.price"
}

func (f *PriceFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}
	if rctx == nil || rctx.Customer == nil {
		return true, nil
	}

	// 价格缺失：无法判定，过滤掉
	if item.Product.Price < 0 {
		return true, nil
	}

	ratio := f.Ratio
	if ratio <= 0 {
		ratio = AffordabilityRatio
	}

	return item.Product.Price > rctx.Customer.AvgOrderValue*ratio, nil
}

var _ Filter = (*PriceFilter)(nil)
