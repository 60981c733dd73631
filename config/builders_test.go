package config

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

const pipelineYAML = `
pipeline:
  name: shop-recommend
  nodes:
    - type: filter
      config:
        filters:
          - type: price
          - type: rule
            expr: 'product.season == customer.season'
    - type: rank.similarity
    - type: rank.weighted
    - type: rerank.topn
      config:
        n: 5
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(pipelineYAML))
	if err != nil {
		t.Fatalf("ParseYAML error = %v", err)
	}
	if cfg.Pipeline.Name != "shop-recommend" {
		t.Errorf("name = %q", cfg.Pipeline.Name)
	}

	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig error = %v", err)
	}

	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline error = %v", err)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("len(nodes) = %d, want 4", len(p.Nodes))
	}

	wantNames := []string{"filter.node", "rank.similarity", "rank.weighted", "rerank.topn"}
	for i, want := range wantNames {
		if got := p.Nodes[i].Name(); got != want {
			t.Errorf("node[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestBuiltPipelineRuns(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(pipelineYAML))
	if err != nil {
		t.Fatal(err)
	}
	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		t.Fatal(err)
	}

	rctx := &core.RecommendContext{
		CustomerID: "C1",
		Customer:   &core.Customer{ID: "C1", AvgOrderValue: 100, Season: "Summer", Embedding: []float64{1, 0}},
	}
	items := []*core.Item{
		core.NewItem(&core.Product{ID: "P1", Price: 50, Season: "Summer", Probability: 0.8, Embedding: []float64{1, 0}}),
		core.NewItem(&core.Product{ID: "P2", Price: 50, Season: "Winter", Probability: 0.9, Embedding: []float64{1, 0}}),
	}

	out, err := p.Run(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "P1" {
		t.Errorf("out = %v, want only P1 (season match)", out)
	}
}

func TestValidatePipelineConfigUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.magic"}}
	if err := ValidatePipelineConfig(cfg); err == nil {
		t.Error("unknown node type should fail validation")
	}
}

func TestBuildRuleFilterRequiresExpr(t *testing.T) {
	if _, err := DefaultFactory().Build("filter.rule", nil); err == nil {
		t.Error("filter.rule without expr should fail")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	want := map[string]bool{
		"filter": true, "filter.price": true, "filter.rule": true,
		"rank.similarity": true, "rank.weighted": true, "rerank.topn": true,
	}
	found := 0
	for _, typ := range types {
		if want[typ] {
			found++
		}
	}
	if found != len(want) {
		t.Errorf("SupportedTypes = %v, missing builtin types", types)
	}
}
