package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/store"
)

func newTestRepo(t *testing.T) *store.MemoryRepository {
	t.Helper()
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	customers := []*core.Customer{
		{ID: "C1", AvgOrderValue: 100, Season: "Summer", Embedding: []float64{1, 0, 0}},
		{ID: "C2", AvgOrderValue: 100}, // 无向量
	}
	for _, c := range customers {
		if err := repo.SaveCustomer(ctx, c); err != nil {
			t.Fatalf("SaveCustomer(%s) error = %v", c.ID, err)
		}
	}

	products := []*core.Product{
		{ID: "P1", Category: "Books", Price: 120, Probability: 0.9, SentimentScore: 0.5, Embedding: []float64{1, 0, 0}},
		{ID: "P2", Category: "Electronics", Price: 200, Probability: 0.9, SentimentScore: 0.9, Embedding: []float64{1, 0, 0}}, // 超出价格阈值
		{ID: "P3", Category: "Fashion", Price: 80, Probability: 0.5, SentimentScore: 0.2, Embedding: []float64{0, 1, 0}},
		{ID: "P4", Category: "Fashion", Price: 60},                                    // 无向量，不可打分
		{ID: "P5", Category: "Sports", Price: 60, Probability: 0.3, Embedding: []float64{1, 0}}, // 维度不一致
	}
	for _, p := range products {
		if err := repo.SaveProduct(ctx, p); err != nil {
			t.Fatalf("SaveProduct(%s) error = %v", p.ID, err)
		}
	}
	return repo
}

func TestRecommend(t *testing.T) {
	r := New(newTestRepo(t))
	recs, err := r.Recommend(context.Background(), "C1", 5)
	if err != nil {
		t.Fatalf("Recommend error = %v", err)
	}

	// P2 超价、P4 无向量、P5 维度不一致 → 只剩 P1 和 P3
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].ProductID != "P1" || recs[1].ProductID != "P3" {
		t.Fatalf("order = [%s, %s], want [P1, P3]", recs[0].ProductID, recs[1].ProductID)
	}

	// 0.7*1.0 + 0.2*0.9 + 0.1*0.5 = 0.93
	if math.Abs(recs[0].FinalScore-0.93) > 1e-9 {
		t.Errorf("P1 FinalScore = %v, want 0.93", recs[0].FinalScore)
	}
	if recs[0].Category != "Books" || recs[0].Price != 120 {
		t.Errorf("P1 metadata = {%s, %v}", recs[0].Category, recs[0].Price)
	}
}

func TestRecommendSinglePairScenario(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	if err := repo.SaveCustomer(ctx, &core.Customer{ID: "C1", AvgOrderValue: 100, Embedding: []float64{1, 0, 0}}); err != nil {
		t.Fatal(err)
	}
	products := []*core.Product{
		{ID: "P1", Price: 120, Probability: 0.9, SentimentScore: 0.5, Embedding: []float64{1, 0, 0}},
		{ID: "P2", Price: 200, Probability: 0.95, SentimentScore: 0.9, Embedding: []float64{1, 0, 0}},
	}
	for _, p := range products {
		if err := repo.SaveProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := New(repo).Recommend(ctx, "C1", 5)
	if err != nil {
		t.Fatalf("Recommend error = %v", err)
	}
	if len(recs) != 1 || recs[0].ProductID != "P1" {
		t.Fatalf("recs = %v, want exactly [P1]", recs)
	}
	if math.Abs(recs[0].FinalScore-0.93) > 1e-9 {
		t.Errorf("FinalScore = %v, want 0.93", recs[0].FinalScore)
	}
}

func TestRecommendTopNTruncates(t *testing.T) {
	r := New(newTestRepo(t))
	recs, err := r.Recommend(context.Background(), "C1", 1)
	if err != nil {
		t.Fatalf("Recommend error = %v", err)
	}
	if len(recs) != 1 || recs[0].ProductID != "P1" {
		t.Fatalf("recs = %v, want just P1", recs)
	}
}

func TestRecommendDefaultTopN(t *testing.T) {
	r := New(newTestRepo(t))
	recs, err := r.Recommend(context.Background(), "C1", 0)
	if err != nil {
		t.Fatalf("Recommend error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("default topN should still return results")
	}
}

func TestRecommendCustomerNotFound(t *testing.T) {
	r := New(newTestRepo(t))
	_, err := r.Recommend(context.Background(), "nobody", 5)
	if !core.IsNotFound(err) {
		t.Errorf("Recommend error = %v, want NOT_FOUND", err)
	}
}

func TestRecommendNoCustomerEmbedding(t *testing.T) {
	r := New(newTestRepo(t))
	_, err := r.Recommend(context.Background(), "C2", 5)
	if !core.IsNoEmbedding(err) {
		t.Errorf("Recommend error = %v, want NO_EMBEDDING", err)
	}
}

func TestRecommendNoEligibleProducts(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()

	// 平均订单金额过低：所有商品都超出 1.5 倍阈值
	if err := repo.SaveCustomer(ctx, &core.Customer{ID: "C1", AvgOrderValue: 1, Embedding: []float64{1, 0}}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveProduct(ctx, &core.Product{ID: "P1", Price: 100, Embedding: []float64{1, 0}}); err != nil {
		t.Fatal(err)
	}

	recs, err := New(repo).Recommend(ctx, "C1", 5)
	if err != nil {
		t.Fatalf("Recommend error = %v, want successful empty result", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

func TestRecommendEmptyCustomerID(t *testing.T) {
	r := New(newTestRepo(t))
	_, err := r.Recommend(context.Background(), "", 5)
	if err == nil {
		t.Fatal("Recommend with empty customer id should fail")
	}
}

func TestRecommendWithExtraFilter(t *testing.T) {
	r := New(newTestRepo(t), WithFilter(&filter.RuleFilter{Expr: `product.category != "Books"`}))
	recs, err := r.Recommend(context.Background(), "C1", 5)
	if err != nil {
		t.Fatalf("Recommend error = %v", err)
	}
	for _, rec := range recs {
		if rec.ProductID == "P1" {
			t.Error("rule filter should have removed P1")
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	repo := store.NewMemoryRepository()
	ctx := context.Background()
	if err := repo.SaveCustomer(ctx, &core.Customer{ID: "C1", AvgOrderValue: 1000, Embedding: []float64{1, 0}}); err != nil {
		t.Fatal(err)
	}
	// 三个商品分数完全相同
	for _, id := range []string{"P30", "P1", "P12"} {
		p := &core.Product{ID: id, Price: 10, Probability: 0.5, SentimentScore: 0.5, Embedding: []float64{1, 0}}
		if err := repo.SaveProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	r := New(repo)
	var prev []string
	for run := 0; run < 3; run++ {
		recs, err := r.Recommend(ctx, "C1", 5)
		if err != nil {
			t.Fatalf("Recommend error = %v", err)
		}
		ids := make([]string, len(recs))
		for i, rec := range recs {
			ids[i] = rec.ProductID
		}
		if prev != nil {
			for i := range ids {
				if ids[i] != prev[i] {
					t.Fatalf("run %d order differs: %v vs %v", run, ids, prev)
				}
			}
		}
		prev = ids
	}
	// 同分时 ID 升序
	want := []string{"P1", "P12", "P30"}
	for i, id := range want {
		if prev[i] != id {
			t.Errorf("order[%d] = %s, want %s", i, prev[i], id)
		}
	}
}
