package rank

import (
	"context"
	"strconv"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/vector"
)

// SimilarityNode 计算客户向量与每个候选商品向量的余弦相似度，
// 写入 item.Similarity，顺序与输入一致。
//
// 维度不一致的候选（理论上已被候选源筛除）在此兜底剔除，
// 不做截断/猜测式比较。
// 客户向量为空时返回 NO_EMBEDDING 错误：相似度是打分的必要输入。
type SimilarityNode struct{}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	if rctx == nil || !rctx.Customer.HasEmbedding() {
		return nil, core.ErrNoCustomerEmbedding
	}

	query := rctx.Customer.Embedding
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		if !vector.SameDimension(query, it.Product.Embedding) {
			it.PutLabel("skipped", utils.Label{Value: "dimension_mismatch", Source: "rank"})
			continue
		}
		out = append(out, it)
	}

	candidates := make([][]float64, len(out))
	for i, it := range out {
		candidates[i] = it.Product.Embedding
	}

	sims := vector.CosineSimilarity(query, candidates)
	for i, it := range out {
		it.Similarity = sims[i]
		it.PutLabel("similarity", utils.Label{
			Value:  strconv.FormatFloat(sims[i], 'f', 4, 64),
			Source: "rank",
		})
	}

	return out, nil
}

var _ pipeline.Node = (*SimilarityNode)(nil)
