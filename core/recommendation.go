package core

// Recommendation 是单条推荐结果：按 FinalScore 降序排列后返回给调用方。
// 每次调用新建，推荐链路自身不持久化结果。
type Recommendation struct {
	ProductID   string
	Category    string
	Price       float64
	Probability float64
	FinalScore  float64
}

// NewRecommendation 从打分后的 Item 构造推荐结果。
func NewRecommendation(it *Item) Recommendation {
	rec := Recommendation{
		FinalScore: it.Score,
	}
	if it.Product != nil {
		rec.ProductID = it.Product.ID
		rec.Category = it.Product.Category
		rec.Price = it.Product.Price
		rec.Probability = it.Product.Probability
	} else {
		rec.ProductID = it.ID
	}
	return rec
}
