package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
)

// Ingestor 为客户/商品批量生成向量并落库。
//
// 向量生成是网络调用，按 MaxConcurrent 限流并发执行；
// 单条文本生成失败时该实体以空向量落库（可稍后重跑补齐），
// 通过 OnEmbedError 上报，不中断整批摄取。
type Ingestor struct {
	Embedder core.EmbeddingService
	Writer   core.RepositoryWriter

	// MaxConcurrent 向量生成的最大并发数，<=0 时默认 4
	MaxConcurrent int

	// OnEmbedError 在单条向量生成失败时回调（可为 nil）
	OnEmbedError func(id string, err error)
}

func (g *Ingestor) concurrency() int {
	if g.MaxConcurrent > 0 {
		return g.MaxConcurrent
	}
	return 4
}

// IngestCustomers 为客户生成向量并写入仓储。
func (g *Ingestor) IngestCustomers(ctx context.Context, customers []*core.Customer) error {
	if g.Embedder == nil || g.Writer == nil {
		return core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput, "ingest: embedder and writer are required")
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency())

	for _, c := range customers {
		cust := c
		eg.Go(func() error {
			emb, err := g.Embedder.Embed(egCtx, CustomerText(cust))
			if err != nil {
				if g.OnEmbedError != nil {
					g.OnEmbedError(cust.ID, err)
				}
				emb = nil
			}
			cust.Embedding = emb
			if err := g.Writer.SaveCustomer(egCtx, cust); err != nil {
				return fmt.Errorf("ingest customer %s: %w", cust.ID, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// IngestProducts 为商品生成向量并写入仓储。
func (g *Ingestor) IngestProducts(ctx context.Context, products []*core.Product) error {
	if g.Embedder == nil || g.Writer == nil {
		return core.NewDomainError(core.ModuleIngest, core.ErrorCodeInvalidInput, "ingest: embedder and writer are required")
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency())

	for _, p := range products {
		prod := p
		eg.Go(func() error {
			emb, err := g.Embedder.Embed(egCtx, ProductText(prod))
			if err != nil {
				if g.OnEmbedError != nil {
					g.OnEmbedError(prod.ID, err)
				}
				emb = nil
			}
			prod.Embedding = emb
			if err := g.Writer.SaveProduct(egCtx, prod); err != nil {
				return fmt.Errorf("ingest product %s: %w", prod.ID, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
