package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 0},
			b:    []float64{-1, 0},
			want: -1,
		},
		{
			name: "zero vector yields zero, not NaN",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "both zero vectors",
			a:    []float64{0, 0},
			b:    []float64{0, 0},
			want: 0,
		},
		{
			name: "dimension mismatch",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatalf("Cosine(%v, %v) = NaN", tt.a, tt.b)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float64{0.3, -0.7, 1.2, 0.05}
	b := []float64{1.1, 0.4, -0.2, 0.9}
	if x, y := Cosine(a, b), Cosine(b, a); x != y {
		t.Errorf("Cosine not symmetric: %v vs %v", x, y)
	}
}

func TestCosineSimilarity(t *testing.T) {
	query := []float64{1, 0, 0}
	candidates := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		nil,
		{0, 0}, // 维度不一致
	}
	got := CosineSimilarity(query, candidates)
	if len(got) != len(candidates) {
		t.Fatalf("len = %d, want %d", len(got), len(candidates))
	}
	want := []float64{1, 0, 1 / math.Sqrt2, 0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("similarity[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSameDimension(t *testing.T) {
	if !SameDimension([]float64{1, 2}, []float64{3, 4}) {
		t.Error("SameDimension should accept equal lengths")
	}
	if SameDimension([]float64{1, 2}, []float64{3}) {
		t.Error("SameDimension should reject unequal lengths")
	}
}
