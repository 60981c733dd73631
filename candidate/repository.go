package candidate

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/vector"
)

// RepositorySource 是默认候选源：从仓储取出全部可打分商品。
//
// 候选集规模足够小，穷举比较即可，不需要 ANN 索引。
// 维度筛查在这里完成：与客户向量维度不一致的商品静默剔除
// （它们无法参与相似度计算，不是错误）。
// RepositorySource 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type RepositorySource struct {
	Repo core.Repository
}

func (s *RepositorySource) Name() string        { return "candidate.repository" }
func (s *RepositorySource) Kind() pipeline.Kind { return pipeline.KindCandidate }

// Process 实现 Node 接口，直接调用 Candidates
func (s *RepositorySource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return s.Candidates(ctx, rctx)
}

// Candidates 实现 Source 接口
func (s *RepositorySource) Candidates(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if s.Repo == nil {
		return nil, nil
	}

	products, err := s.Repo.ListScorableProducts(ctx)
	if err != nil {
		return nil, err
	}

	var query []float64
	if rctx != nil && rctx.Customer != nil {
		query = rctx.Customer.Embedding
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		if !p.HasEmbedding() {
			continue
		}
		// 维度不一致的商品无法与客户向量比较，跳过
		if len(query) > 0 && !vector.SameDimension(query, p.Embedding) {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel("candidate_source", utils.Label{Value: s.Name(), Source: "candidate"})
		out = append(out, it)
	}
	return out, nil
}

var (
	_ Source        = (*RepositorySource)(nil)
	_ pipeline.Node = (*RepositorySource)(nil)
)
