package rank

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// 打分权重是固定策略常数，按构造和为 1.0。
// 调整权重属于策略变更，不是 bug fix。
const (
	WeightSimilarity  = 0.7 // 余弦相似度
	WeightProbability = 0.2 // 推荐概率先验
	WeightSentiment   = 0.1 // 评论情感分
)

// WeightedNode 把相似度与两个商品侧信号线性混合为最终分数：
//
//	final = 0.7*similarity + 0.2*probability + 0.1*sentiment
//
// 然后按分数降序排序；分数相同时按 ProductID 升序，
// 保证相同输入的重复运行产生完全一致的输出顺序。
// - 写入 labels：rank_model
// - 更新 item.Score 并排序
type WeightedNode struct{}

func (n *WeightedNode) Name() string        { return "rank.weighted" }
func (n *WeightedNode) Kind() pipeline.Kind { return pipeline.KindRank }

// Score 计算单个商品的最终分数。
func Score(p *core.Product, similarity float64) float64 {
	if p == nil {
		return 0
	}
	return WeightSimilarity*similarity +
		WeightProbability*p.Probability +
		WeightSentiment*p.SentimentScore
}

func (n *WeightedNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = Score(it.Product, it.Similarity)
		it.PutLabel("rank_model", utils.Label{Value: "weighted", Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		// 同分时按 ID 升序，保证确定性
		return items[i].ID < items[j].ID
	})
	return items, nil
}

var _ pipeline.Node = (*WeightedNode)(nil)
