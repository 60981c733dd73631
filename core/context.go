package core

import "github.com/rushteam/shoprec/pkg/utils"

// RecommendContext 承载客户/场景/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	CustomerID string
	Scene      string

	// Customer 是当前请求的客户画像快照，调用期间只读。
	Customer *Customer

	// Labels 是客户级标签，可驱动整个 Pipeline 行为
	// 例如：新客户、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数，例如 top_n、season 覆盖等。
	Params map[string]any
}

// PutLabel 写入客户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取客户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
