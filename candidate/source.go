package candidate

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Source 表示一个可复用的候选源（仓储全量/热门/应季/...）。
// 你可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Candidates(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
