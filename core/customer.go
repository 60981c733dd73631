package core

// Customer 是客户画像的核心抽象。
//
// 一句话定义：客户 = 推荐链路的"查询向量 + 过滤信号"来源。
//
// 设计要点：
//  维度            作用
//  Embedding       相似度计算的查询向量（来自浏览/购买历史文本）
//  AvgOrderValue   价格可负担过滤的基准
//  Location/Season 业务规则过滤（可选）
//
// Customer 由摄取链路（ingest）写入，推荐链路只读。
type Customer struct {
	ID string

	// 静态属性（来源于原始数据集，部分字段不参与打分）
	Age      int
	Gender   string
	Location string
	Segment  string // 客户分群，例如 "New Visitor" / "Frequent Buyer"
	Holiday  string
	Season   string

	// AvgOrderValue 是平均订单金额，价格过滤的基准值
	AvgOrderValue float64

	// 行为历史（摄取时拼接为 text features 后生成向量）
	BrowsingHistory []string
	PurchaseHistory []string

	// Embedding 是行为文本的语义向量。
	// 空切片/nil 是"无向量"哨兵值，与全零向量含义不同。
	Embedding []float64
}

// HasEmbedding 判断客户是否携带可用向量。
func (c *Customer) HasEmbedding() bool {
	return c != nil && len(c.Embedding) > 0
}
