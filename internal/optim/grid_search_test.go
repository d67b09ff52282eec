package optim

import (
	"context"
	"testing"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
)

func TestGridSearchCoversWholeGrid(t *testing.T) {
	g := &GridSearch{
		Algorithm: "quick",
		DataType:  dataset.KindRandom,
		DataSize:  128,
		Seed:      1,
		Trials:    2,
		Cutoffs:   []int{4, 12, 24},
		Pivots:    []algo.PivotPolicy{algo.PivotFirst, algo.PivotMedian3},
	}
	best, evals, err := g.Search(context.Background(), algo.NewRegistry(), CostComparisons)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 6 {
		t.Fatalf("evaluated %d points, want 6", len(evals))
	}
	found := false
	for _, e := range evals {
		if e.Candidate == best {
			found = true
			if e.Cost <= 0 {
				t.Error("best candidate has zero cost")
			}
		}
	}
	if !found {
		t.Error("best candidate not in evaluation table")
	}
	for _, e := range evals {
		if e.Cost < 0 {
			t.Errorf("negative cost for %+v", e.Candidate)
		}
	}
}

func TestGridSearchBestIsMinimal(t *testing.T) {
	g := &GridSearch{
		Algorithm: "quick",
		DataType:  dataset.KindSorted,
		DataSize:  256,
		Seed:      3,
		Cutoffs:   []int{2, 16},
		Pivots:    []algo.PivotPolicy{algo.PivotFirst, algo.PivotMiddle},
	}
	best, evals, err := g.Search(context.Background(), algo.NewRegistry(), CostComparisons)
	if err != nil {
		t.Fatal(err)
	}
	var bestCost float64
	for _, e := range evals {
		if e.Candidate == best {
			bestCost = e.Cost
		}
	}
	for _, e := range evals {
		if e.Cost < bestCost {
			t.Errorf("candidate %+v beats reported best", e.Candidate)
		}
	}
	// first-element pivots on sorted input degenerate; middle must win
	if best.PivotPolicy == algo.PivotFirst {
		t.Error("first pivot should not win on sorted input")
	}
}

func TestGridSearchDefaults(t *testing.T) {
	g := &GridSearch{
		Algorithm: "quick",
		DataType:  dataset.KindRandom,
		DataSize:  32,
		Seed:      1,
	}
	best, evals, err := g.Search(context.Background(), algo.NewRegistry(), CostAccesses)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 {
		t.Fatalf("expected single default point, got %d", len(evals))
	}
	if best.InsertionCutoff != algo.DefaultInsertionCutoff || best.PivotPolicy != algo.PivotMedian3 {
		t.Errorf("unexpected default candidate: %+v", best)
	}
}

func TestGridSearchUnknownAlgorithm(t *testing.T) {
	g := &GridSearch{Algorithm: "nope", DataType: dataset.KindRandom, DataSize: 8}
	if _, _, err := g.Search(context.Background(), algo.NewRegistry(), CostComparisons); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
