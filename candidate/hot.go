package candidate

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// Hot 是热门候选源，支持从 Store 读取热门商品 ID 榜单。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按分数排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空，使用内存中的 IDs 作为 fallback
//
// 榜单里的 ID 通过 Repo 兑换为可打分商品；没有向量的商品不进入候选。
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Store core.Store
	Repo  core.Repository
	Key   string   // 存储 key，例如 "hot:products" 或 "hot:winter"
	IDs   []string // fallback 内存列表
	TopN  int      // 从榜单取前 N 个，<=0 时取前 100
}

func (s *Hot) Name() string        { return "candidate.hot" }
func (s *Hot) Kind() pipeline.Kind { return pipeline.KindCandidate }

// Process 实现 Node 接口，直接调用 Candidates
func (s *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return s.Candidates(ctx, rctx)
}

// Candidates 实现 Source 接口
func (s *Hot) Candidates(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	var ids []string

	topN := int64(s.TopN)
	if topN <= 0 {
		topN = 100
	}

	// 优先从 Store 读取（支持 ZRange 或普通 Get）
	if s.Store != nil && s.Key != "" {
		if kvStore, ok := s.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, s.Key, 0, topN-1)
			if err == nil && len(members) > 0 {
				ids = members
			}
		} else {
			data, err := s.Store.Get(ctx, s.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// Fallback：使用内存 IDs
	if len(ids) == 0 {
		ids = s.IDs
	}
	if len(ids) == 0 || s.Repo == nil {
		return nil, nil
	}

	// 榜单 ID 兑换为商品记录
	products, err := s.Repo.ListScorableProducts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*core.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel("candidate_source", utils.Label{Value: s.Name(), Source: "candidate"})
		out = append(out, it)
	}
	return out, nil
}

var (
	_ Source        = (*Hot)(nil)
	_ pipeline.Node = (*Hot)(nil)
)
