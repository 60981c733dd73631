package core

import "context"

// EmbeddingService 是文本向量生成服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（embed）实现
//   - 推荐链路不依赖此接口：打分只消费已生成的向量
//   - 摄取链路（ingest）用它为行为/商品文本生成向量
//
// 实现：
//   - embed.OllamaService（本地 Ollama 模型，原始数据集使用 all-minilm 系列）
type EmbeddingService interface {
	// Embed 为一段文本生成向量。空白文本返回空向量哨兵（nil），不报错。
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch 为多段文本生成向量，结果与输入顺序一一对应。
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions 返回向量维度（由模型决定，例如 all-minilm 为 384）。
	// 未知时返回 0。
	Dimensions() int

	// Close 释放资源。
	Close() error
}
