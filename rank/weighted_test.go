package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		product    *core.Product
		similarity float64
		want       float64
	}{
		{
			name:       "mixed signals",
			product:    &core.Product{ID: "P1", Probability: 0.9, SentimentScore: 0.5},
			similarity: 1.0,
			want:       0.93, // 0.7*1.0 + 0.2*0.9 + 0.1*0.5
		},
		{
			name:       "all zero",
			product:    &core.Product{ID: "P2"},
			similarity: 0,
			want:       0,
		},
		{
			name:       "similarity dominates",
			product:    &core.Product{ID: "P3", Probability: 0.1, SentimentScore: 0.1},
			similarity: 0.8,
			want:       0.59,
		},
		{
			name: "nil product",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.product, tt.similarity)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedNodeOrders(t *testing.T) {
	items := []*core.Item{
		newScoredItem("P3", 0.5, 0, 0),
		newScoredItem("P1", 0.9, 0.5, 0.5),
		newScoredItem("P2", 0.7, 0.2, 0.1),
	}

	node := &WeightedNode{}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process error = %v", err)
	}

	wantOrder := []string{"P1", "P2", "P3"}
	for i, id := range wantOrder {
		if out[i].ID != id {
			t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, id)
		}
	}
	for _, it := range out {
		if lbl, ok := it.Labels["rank_model"]; !ok || lbl.Value != "weighted" {
			t.Errorf("item %s missing rank_model label", it.ID)
		}
	}
}

func TestWeightedNodeTieBreak(t *testing.T) {
	// 相同分数：按 ProductID 升序
	items := []*core.Item{
		newScoredItem("P9", 0.5, 0.5, 0.5),
		newScoredItem("P10", 0.5, 0.5, 0.5),
		newScoredItem("P2", 0.5, 0.5, 0.5),
	}

	node := &WeightedNode{}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process error = %v", err)
	}

	// 字符串升序（"P10" < "P2" < "P9"）
	wantOrder := []string{"P10", "P2", "P9"}
	for i, id := range wantOrder {
		if out[i].ID != id {
			t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestWeightedNodeDeterministic(t *testing.T) {
	build := func() []*core.Item {
		return []*core.Item{
			newScoredItem("B", 0.4, 0.4, 0.4),
			newScoredItem("A", 0.4, 0.4, 0.4),
			newScoredItem("C", 0.9, 0, 0),
		}
	}

	node := &WeightedNode{}
	first, err := node.Process(context.Background(), nil, build())
	if err != nil {
		t.Fatalf("Process error = %v", err)
	}
	second, err := node.Process(context.Background(), nil, build())
	if err != nil {
		t.Fatalf("Process error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("run order differs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func newScoredItem(id string, sim, prob, sent float64) *core.Item {
	it := core.NewItem(&core.Product{ID: id, Probability: prob, SentimentScore: sent})
	it.Similarity = sim
	return it
}
