package config

import (
	"fmt"

	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/rank"
	"github.com/rushteam/shoprec/rerank"
)

// 内置 Node 的注册。候选源（candidate.*）依赖 Repository/Store 实例，
// 需在代码中构造后置于 Pipeline 头部，不走配置注册表。
func init() {
	Register("filter", buildFilterNode)
	Register("filter.price", buildPriceFilterNode)
	Register("filter.rule", buildRuleFilterNode)
	Register("rank.similarity", buildSimilarityNode)
	Register("rank.weighted", buildWeightedNode)
	Register("rerank.topn", buildTopNNode)
}

// buildFilterNode 构建组合过滤 Node。
// 配置形如：
//
//	type: filter
//	config:
//	  filters:
//	    - type: price
//	    - type: rule
//	      expr: 'product.season == customer.season'
func buildFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet[string](filterMap, "type", "")
		switch filterType {
		case "price":
			filters = append(filters, &filter.PriceFilter{})
		case "rule":
			expr := conv.ConfigGet[string](filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter requires expr")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func buildPriceFilterNode(_ map[string]interface{}) (pipeline.Node, error) {
	// 价格倍率是固定策略常数，不走配置
	return &filter.FilterNode{Filters: []filter.Filter{&filter.PriceFilter{}}}, nil
}

func buildRuleFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("rule filter requires expr")
	}
	return &filter.FilterNode{Filters: []filter.Filter{&filter.RuleFilter{Expr: expr}}}, nil
}

func buildSimilarityNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rank.SimilarityNode{}, nil
}

func buildWeightedNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rank.WeightedNode{}, nil
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(config, "n", 0))
	return &rerank.TopNNode{N: n}, nil
}
