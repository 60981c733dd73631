package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/store"
)

// fakeEmbedder 按文本内容返回固定向量，特定文本可注入失败。
type fakeEmbedder struct {
	mu      sync.Mutex
	failOn  string
	calls   int
	vectors map[string][]float64
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if text == "" {
		return nil, nil
	}
	if f.failOn != "" && text == f.failOn {
		return nil, errors.New("embed backend down")
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return 2 }
func (f *fakeEmbedder) Close() error    { return nil }

var _ core.EmbeddingService = (*fakeEmbedder)(nil)

func TestIngestCustomers(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()

	ing := &Ingestor{
		Embedder: &fakeEmbedder{},
		Writer:   repo,
	}

	customers := []*core.Customer{
		{ID: "C1", BrowsingHistory: []string{"Books"}},
		{ID: "C2"}, // 无文本特征 → 空向量哨兵
	}
	if err := ing.IngestCustomers(ctx, customers); err != nil {
		t.Fatalf("IngestCustomers error = %v", err)
	}

	c1, err := repo.GetCustomer(ctx, "C1")
	if err != nil {
		t.Fatalf("GetCustomer error = %v", err)
	}
	if !c1.HasEmbedding() {
		t.Error("C1 should have an embedding")
	}

	c2, err := repo.GetCustomer(ctx, "C2")
	if err != nil {
		t.Fatalf("GetCustomer error = %v", err)
	}
	if c2.HasEmbedding() {
		t.Error("C2 without text should keep the no-embedding sentinel")
	}
}

func TestIngestProductsEmbedFailureDegrades(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()

	var (
		mu     sync.Mutex
		failed []string
	)
	ing := &Ingestor{
		Embedder: &fakeEmbedder{failOn: "Books Fiction Brand B"},
		Writer:   repo,
		OnEmbedError: func(id string, err error) {
			mu.Lock()
			failed = append(failed, id)
			mu.Unlock()
		},
	}

	products := []*core.Product{
		{ID: "P1", Category: "Books", Subcategory: "Fiction", Brand: "Brand B"},
		{ID: "P2", Category: "Sports", Brand: "Brand A"},
	}
	if err := ing.IngestProducts(ctx, products); err != nil {
		t.Fatalf("IngestProducts error = %v", err)
	}

	if len(failed) != 1 || failed[0] != "P1" {
		t.Errorf("failed = %v, want [P1]", failed)
	}

	// 失败实体仍落库（空向量），不进入可打分集合
	got, err := repo.ListScorableProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "P2" {
		t.Errorf("scorable = %v, want [P2]", got)
	}
}

func TestIngestRequiresDependencies(t *testing.T) {
	ing := &Ingestor{}
	if err := ing.IngestCustomers(context.Background(), nil); err == nil {
		t.Error("IngestCustomers without embedder/writer should fail")
	}
	if err := ing.IngestProducts(context.Background(), nil); err == nil {
		t.Error("IngestProducts without embedder/writer should fail")
	}
}
