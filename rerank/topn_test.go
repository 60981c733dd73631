package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestTopNNode(t *testing.T) {
	items := []*core.Item{
		core.NewItem(&core.Product{ID: "P1"}),
		core.NewItem(&core.Product{ID: "P2"}),
		core.NewItem(&core.Product{ID: "P3"}),
	}

	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{"truncate to two", 2, 2},
		{"n larger than input", 10, 3},
		{"n equals input", 3, 3},
		{"zero means no truncation", 0, 3},
		{"negative means no truncation", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process error = %v", err)
			}
			if len(out) != tt.wantLen {
				t.Errorf("len(out) = %d, want %d", len(out), tt.wantLen)
			}
			// 截断保持前缀顺序
			for i := range out {
				if out[i].ID != items[i].ID {
					t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, items[i].ID)
				}
			}
		})
	}
}
