package analysis

import (
	"context"
	"testing"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
)

func synthetic(model Model, scale float64, sizes []int) []Sample {
	g := modelFuncs[model]
	samples := make([]Sample, len(sizes))
	for i, n := range sizes {
		samples[i] = Sample{N: n, Comparisons: scale * g(float64(n))}
	}
	return samples
}

func TestFitGrowthRecoversKnownModels(t *testing.T) {
	sizes := []int{16, 32, 64, 128, 256, 512}
	for _, model := range []Model{ModelLinear, ModelLinearithmic, ModelQuadratic} {
		samples := synthetic(model, 2.5, sizes)
		fit, ok := BestFit(samples, MetricComparisons)
		if !ok {
			t.Fatalf("%s: no fit", model)
		}
		if fit.Model != model {
			t.Errorf("expected %s, got %s (residual %g)", model, fit.Model, fit.Residual)
		}
		if fit.Residual > 1e-9 {
			t.Errorf("%s: exact data should fit exactly, residual %g", model, fit.Residual)
		}
	}
}

func TestFitGrowthNeedsTwoSamples(t *testing.T) {
	if FitGrowth([]Sample{{N: 10, Comparisons: 100}}, MetricComparisons) != nil {
		t.Error("single sample should not produce a fit")
	}
}

func TestMeasureBubbleIsQuadratic(t *testing.T) {
	samples, err := Measure(context.Background(), func() algo.Sorter { return algo.NewBubble() },
		dataset.KindRandom, []int{16, 32, 64, 128, 256}, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	fit, ok := BestFit(samples, MetricComparisons)
	if !ok {
		t.Fatal("no fit")
	}
	if fit.Model != ModelQuadratic {
		t.Errorf("bubble comparisons fit %s, want %s", fit.Model, ModelQuadratic)
	}
}

func TestMeasureMergeIsLinearithmic(t *testing.T) {
	samples, err := Measure(context.Background(), func() algo.Sorter { return algo.NewMerge() },
		dataset.KindRandom, []int{32, 64, 128, 256, 512, 1024}, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	fit, ok := BestFit(samples, MetricComparisons)
	if !ok {
		t.Fatal("no fit")
	}
	if fit.Model != ModelLinearithmic {
		t.Errorf("merge comparisons fit %s, want %s", fit.Model, ModelLinearithmic)
	}
}

func TestMeasureIsDeterministic(t *testing.T) {
	ctx := context.Background()
	mk := func() ([]Sample, error) {
		return Measure(ctx, func() algo.Sorter { return algo.NewQuick() },
			dataset.KindRandom, []int{64, 128}, 9, 2)
	}
	a, err := mk()
	if err != nil {
		t.Fatal(err)
	}
	b, err := mk()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Comparisons != b[i].Comparisons || a[i].Swaps != b[i].Swaps {
			t.Fatalf("repeated measurement differs at size %d", a[i].N)
		}
	}
}

func TestCompareAlgorithms(t *testing.T) {
	reg := algo.NewRegistry()
	comps, err := CompareAlgorithms(context.Background(), reg, []string{"bubble", "merge"},
		dataset.KindRandom, []int{32, 64, 128, 256}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(comps))
	}
	bubble := TotalCost(comps[0].Samples, MetricComparisons)
	merge := TotalCost(comps[1].Samples, MetricComparisons)
	if bubble <= merge {
		t.Errorf("bubble (%g) should cost more comparisons than merge (%g)", bubble, merge)
	}

	if _, err := CompareAlgorithms(context.Background(), reg, []string{"nope"},
		dataset.KindRandom, []int{8}, 1, 1); err == nil {
		t.Error("unknown algorithm should error")
	}
}
