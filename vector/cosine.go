package vector

import "math"

// CosineSimilarity 计算 query 与每个候选向量的余弦相似度，
// 结果顺序与 candidates 一致。
//
// 前置条件：query 非空，各候选向量与 query 维度一致（调用方负责筛除空向量）。
// 任一操作数模长为 0 时该对的相似度定义为 0（不是 NaN），
// 避免退化向量污染下游排序。
// query 或 candidates 为空时返回空结果。
func CosineSimilarity(query []float64, candidates [][]float64) []float64 {
	if len(query) == 0 || len(candidates) == 0 {
		return nil
	}

	normQ := norm(query)
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = cosine(query, c, normQ)
	}
	return out
}

// Cosine 计算两个向量的余弦相似度，模长为 0 或维度不一致时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return cosine(a, b, norm(a))
}

// SameDimension 判断两个向量维度是否一致（均非空且等长）。
func SameDimension(a, b []float64) bool {
	return len(a) > 0 && len(a) == len(b)
}

func cosine(query, c []float64, normQ float64) float64 {
	if len(c) != len(query) {
		return 0
	}
	var dot, normC float64
	for j, v := range c {
		dot += query[j] * v
		normC += v * v
	}
	if normQ == 0 || normC == 0 {
		return 0
	}
	return dot / (normQ * math.Sqrt(normC))
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
