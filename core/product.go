package core

// Product 是商品元信息的核心抽象。
//
// 参与打分的字段：
//   - Embedding: 与客户向量做余弦相似度
//   - Probability: 推荐概率先验
//   - SentimentScore: 评论情感分
//   - Price: 可负担过滤
//
// 其余字段为描述性信息，随结果透传但不参与打分。
// Product 由摄取链路写入，推荐链路只读。
type Product struct {
	ID          string
	Category    string
	Subcategory string
	Brand       string

	// Price 是商品价格。缺失价格（<0）的商品在过滤阶段被剔除（fail-closed）。
	Price float64

	// Probability 是上游模型给出的推荐概率先验，取值 [0,1]
	Probability float64

	// SentimentScore 是评论情感分。上游约定可能是 [0,1] 或 [-1,1]，
	// 本库不做归一化，按任意实数信号处理。
	SentimentScore float64

	// 描述性字段（不参与打分）
	Rating                float64  // 商品评分
	SimilarProductsRating float64  // 相似商品平均评分
	Holiday               string
	Season                string
	Geography             string
	SimilarProducts       []string

	// Embedding 是商品文本（类目/品牌/相似商品）的语义向量。
	// 空切片/nil 是"无向量"哨兵值，此类商品不可打分。
	Embedding []float64
}

// HasEmbedding 判断商品是否携带可用向量。
func (p *Product) HasEmbedding() bool {
	return p != nil && len(p.Embedding) > 0
}
