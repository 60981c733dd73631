package core

import "github.com/rushteam/shoprec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选商品、相似度、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID         string
	Product    *Product
	Similarity float64
	Score      float64
	Labels     map[string]utils.Label
}

// NewItem 以商品为候选创建一个 Item。
func NewItem(p *Product) *Item {
	it := &Item{
		Product: p,
		Labels:  make(map[string]utils.Label),
	}
	if p != nil {
		it.ID = p.ID
	}
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
