// Package recommend 是推荐编排层：把候选、过滤、打分、截断串成
// 一次完整的 Recommend 调用，并把失败映射为类型化的 DomainError。
package recommend

import (
	"context"

	"github.com/rushteam/shoprec/candidate"
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/rank"
	"github.com/rushteam/shoprec/rerank"
)

// DefaultTopN 是未显式指定 topN 时的默认返回条数。
const DefaultTopN = 5

// Recommender 是推荐编排器。
//
// 调用链路（只读，无副作用，单次调用内无并发）：
//
//	Repository → 候选（维度筛查）→ 价格过滤（+附加规则）→ 余弦相似度
//	→ 加权打分排序 → TopN 截断
//
// 不同客户的并发 Recommend 调用相互独立，只要 Repository
// 支持并发读即可安全并行。
type Recommender struct {
	repo core.Repository

	// extraFilters 在价格过滤之后追加执行（可选业务规则）
	extraFilters []filter.Filter
}

// Option 配置 Recommender。
type Option func(*Recommender)

// WithFilter 追加一个在价格过滤之后执行的业务过滤器。
func WithFilter(f filter.Filter) Option {
	return func(r *Recommender) {
		if f != nil {
			r.extraFilters = append(r.extraFilters, f)
		}
	}
}

// New 创建一个 Recommender。
func New(repo core.Repository, opts ...Option) *Recommender {
	r := &Recommender{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend 为指定客户生成至多 topN 条推荐，按最终分数降序排列。
//
// 错误语义：
//   - 客户不存在 → NOT_FOUND（core.ErrCustomerNotFound）
//   - 客户没有可用向量（含向量损坏降级）→ NO_EMBEDDING（core.ErrNoCustomerEmbedding）
//   - 过滤后没有候选 → 成功返回空结果，不是错误
//   - 存储层故障原样透传，不重试
func (r *Recommender) Recommend(ctx context.Context, customerID string, topN int) ([]core.Recommendation, error) {
	if r.repo == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput, "recommend: repository is required")
	}
	if customerID == "" {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput, "recommend: customer id is required")
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	// 1. 客户画像
	cust, err := r.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// 2. 客户向量哨兵检查
	if !cust.HasEmbedding() {
		return nil, core.ErrNoCustomerEmbedding
	}

	rctx := &core.RecommendContext{
		CustomerID: customerID,
		Customer:   cust,
	}

	// 3. 候选：全部可打分商品（空向量/维度不一致的商品已被剔除）
	source := &candidate.RepositorySource{Repo: r.repo}
	items, err := source.Candidates(ctx, rctx)
	if err != nil {
		return nil, err
	}

	// 4-6. 过滤 → 相似度 → 打分排序 → TopN
	filters := append([]filter.Filter{&filter.PriceFilter{}}, r.extraFilters...)
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&filter.FilterNode{Filters: filters},
			&rank.SimilarityNode{},
			&rank.WeightedNode{},
			&rerank.TopNNode{N: topN},
		},
	}

	ranked, err := r.run(ctx, p, rctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]core.Recommendation, 0, len(ranked))
	for _, it := range ranked {
		if it == nil {
			continue
		}
		out = append(out, core.NewRecommendation(it))
	}
	return out, nil
}

// run 执行 pipeline；过滤后候选为空时短路返回空结果（不是错误）。
func (r *Recommender) run(
	ctx context.Context,
	p *pipeline.Pipeline,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if len(cur) == 0 {
			return nil, nil
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
