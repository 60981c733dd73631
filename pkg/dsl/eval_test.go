package dsl

import (
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

func testItem() *core.Item {
	it := core.NewItem(&core.Product{
		ID:             "P1",
		Category:       "Books",
		Brand:          "Brand B",
		Price:          49.5,
		Probability:    0.8,
		SentimentScore: 0.6,
		Rating:         4.2,
		Season:         "Summer",
	})
	it.Similarity = 0.9
	it.PutLabel("candidate_source", utils.Label{Value: "candidate.repository", Source: "candidate"})
	return it
}

func testCtx() *core.RecommendContext {
	return &core.RecommendContext{
		CustomerID: "C1",
		Customer: &core.Customer{
			ID:            "C1",
			Location:      "Mumbai",
			Season:        "Summer",
			AvgOrderValue: 100,
		},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expression is true", "", true, false},
		{"category equality", `product.category == "Books"`, true, false},
		{"price comparison", `product.price < 50.0`, true, false},
		{"customer field", `customer.location == "Mumbai"`, true, false},
		{"cross entity", `product.season == customer.season`, true, false},
		{"price rule via customer", `product.price <= customer.avg_order_value * 1.5`, true, false},
		{"similarity exposed", `product.similarity >= 0.9`, true, false},
		{"label lookup", `label.candidate_source == "candidate.repository"`, true, false},
		{"logical and", `product.category == "Books" && product.rating > 4.0`, true, false},
		{"false branch", `product.brand == "Brand A"`, false, false},
		{"non boolean result", `product.price`, false, true},
		{"syntax error", `product.category ==`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(testItem(), testCtx()).Evaluate(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q) expected error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateNilContext(t *testing.T) {
	got, err := NewEval(testItem(), nil).Evaluate(`product.category == "Books"`)
	if err != nil {
		t.Fatalf("Evaluate error = %v", err)
	}
	if !got {
		t.Error("Evaluate without context should still see product fields")
	}
}
