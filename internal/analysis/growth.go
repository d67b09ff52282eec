package analysis

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
)

// Sample is the averaged cost of sorting one input size.
type Sample struct {
	N           int
	Comparisons float64
	Swaps       float64
	Reads       float64
	Writes      float64
	Elapsed     time.Duration
}

// MetricSelector picks one cost dimension out of a sample.
type MetricSelector func(Sample) float64

var (
	MetricComparisons MetricSelector = func(s Sample) float64 { return s.Comparisons }
	MetricSwaps       MetricSelector = func(s Sample) float64 { return s.Swaps }
	MetricAccesses    MetricSelector = func(s Sample) float64 { return s.Reads + s.Writes }
)

// Measure runs the sorter over each size, averaging metric counters
// across trials. Trials vary the seed deterministically so repeated
// calls measure identical inputs.
func Measure(ctx context.Context, sorter func() algo.Sorter, kind dataset.Kind, sizes []int, seed int64, trials int) ([]Sample, error) {
	if trials < 1 {
		trials = 1
	}
	samples := make([]Sample, 0, len(sizes))
	for _, n := range sizes {
		var acc Sample
		acc.N = n
		for trial := 0; trial < trials; trial++ {
			values, err := dataset.Generate(kind, n, seed+int64(trial))
			if err != nil {
				return nil, err
			}
			eng := algo.New(sorter())
			if _, err := eng.Execute(ctx, values, algo.Options{Seed: seed + int64(trial)}); err != nil {
				return nil, err
			}
			m := eng.Metrics()
			acc.Comparisons += float64(m.Comparisons)
			acc.Swaps += float64(m.Swaps)
			acc.Reads += float64(m.Reads)
			acc.Writes += float64(m.Writes)
			acc.Elapsed += m.Elapsed
		}
		div := float64(trials)
		acc.Comparisons /= div
		acc.Swaps /= div
		acc.Reads /= div
		acc.Writes /= div
		acc.Elapsed /= time.Duration(trials)
		samples = append(samples, acc)
	}
	return samples, nil
}

// Model names a candidate growth function.
type Model string

const (
	ModelLinear       Model = "n"
	ModelLinearithmic Model = "n log n"
	ModelQuadratic    Model = "n^2"
)

var modelFuncs = map[Model]func(n float64) float64{
	ModelLinear:       func(n float64) float64 { return n },
	ModelLinearithmic: func(n float64) float64 { return n * math.Log2(math.Max(n, 2)) },
	ModelQuadratic:    func(n float64) float64 { return n * n },
}

// GrowthFit is one model's least-squares fit: cost ≈ Scale * model(n).
// Residual is the root-mean-square error normalized by the mean
// observed cost, so fits across metrics are comparable.
type GrowthFit struct {
	Model    Model
	Scale    float64
	Residual float64
}

// FitGrowth fits the selected metric against every candidate model and
// returns fits sorted best first. At least two samples are required;
// fewer yield nil.
func FitGrowth(samples []Sample, sel MetricSelector) []GrowthFit {
	if len(samples) < 2 {
		return nil
	}

	mean := 0.0
	for _, s := range samples {
		mean += sel(s)
	}
	mean /= float64(len(samples))
	if mean == 0 {
		mean = 1
	}

	fits := make([]GrowthFit, 0, len(modelFuncs))
	for model, g := range modelFuncs {
		// minimize sum (y - c*g)^2 over c: c = sum(y*g)/sum(g^2)
		var num, den float64
		for _, s := range samples {
			gv := g(float64(s.N))
			num += sel(s) * gv
			den += gv * gv
		}
		if den == 0 {
			continue
		}
		c := num / den

		var sse float64
		for _, s := range samples {
			r := sel(s) - c*g(float64(s.N))
			sse += r * r
		}
		rmse := math.Sqrt(sse / float64(len(samples)))
		fits = append(fits, GrowthFit{Model: model, Scale: c, Residual: rmse / mean})
	}

	sortFits(fits)
	return fits
}

// BestFit is a convenience wrapper returning only the winning model.
func BestFit(samples []Sample, sel MetricSelector) (GrowthFit, bool) {
	fits := FitGrowth(samples, sel)
	if len(fits) == 0 {
		return GrowthFit{}, false
	}
	return fits[0], true
}

func sortFits(fits []GrowthFit) {
	for i := 1; i < len(fits); i++ {
		for j := i; j > 0 && fits[j].Residual < fits[j-1].Residual; j-- {
			fits[j], fits[j-1] = fits[j-1], fits[j]
		}
	}
}

// Comparison pairs an algorithm name with its size sweep.
type Comparison struct {
	Algorithm string
	Samples   []Sample
	Best      GrowthFit
}

// CompareAlgorithms measures several algorithms over the same sweep.
func CompareAlgorithms(ctx context.Context, reg *algo.Registry, names []string, kind dataset.Kind, sizes []int, seed int64, trials int) ([]Comparison, error) {
	out := make([]Comparison, 0, len(names))
	for _, name := range names {
		if _, err := reg.Get(name); err != nil {
			return nil, err
		}
		name := name
		samples, err := Measure(ctx, func() algo.Sorter {
			s, _ := reg.Get(name)
			return s
		}, kind, sizes, seed, trials)
		if err != nil {
			return nil, err
		}
		c := Comparison{Algorithm: name, Samples: samples}
		if fit, ok := BestFit(samples, MetricComparisons); ok {
			c.Best = fit
		}
		out = append(out, c)
	}
	return out, nil
}

// TotalCost sums a metric over a sweep, a scalar for quick ranking.
func TotalCost(samples []Sample, sel MetricSelector) float64 {
	total := 0.0
	for _, s := range samples {
		total += sel(s)
	}
	return total
}
