// Package optim tunes engine parameters by exhaustive grid search.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/step"
)

// Candidate is one point on the tuning grid.
type Candidate struct {
	InsertionCutoff int
	PivotPolicy     algo.PivotPolicy
}

// Cost reduces a run's counters to the scalar being minimized.
type Cost func(m step.Metrics) float64

// CostComparisons ranks candidates by comparison count alone.
func CostComparisons(m step.Metrics) float64 { return float64(m.Comparisons) }

// CostAccesses ranks candidates by total array traffic.
func CostAccesses(m step.Metrics) float64 { return float64(m.Reads + m.Writes) }

// GridSearch sweeps cutoff and pivot policy for one algorithm over a
// fixed workload.
type GridSearch struct {
	Algorithm string
	DataType  dataset.Kind
	DataSize  int
	Seed      int64
	Trials    int

	Cutoffs []int
	Pivots  []algo.PivotPolicy
}

// Evaluation is one grid point's measured cost.
type Evaluation struct {
	Candidate Candidate
	Cost      float64
}

// Search evaluates every grid point and returns the cheapest candidate
// along with the full evaluation table. The workload is regenerated
// identically per candidate so points are comparable.
func (g *GridSearch) Search(ctx context.Context, reg *algo.Registry, cost Cost) (Candidate, []Evaluation, error) {
	trials := g.Trials
	if trials < 1 {
		trials = 1
	}
	cutoffs := g.Cutoffs
	if len(cutoffs) == 0 {
		cutoffs = []int{algo.DefaultInsertionCutoff}
	}
	pivots := g.Pivots
	if len(pivots) == 0 {
		pivots = []algo.PivotPolicy{algo.PivotMedian3}
	}

	best := Candidate{}
	bestCost := math.Inf(1)
	evals := make([]Evaluation, 0, len(cutoffs)*len(pivots))

	for _, cutoff := range cutoffs {
		for _, pivot := range pivots {
			cand := Candidate{InsertionCutoff: cutoff, PivotPolicy: pivot}

			total := 0.0
			for trial := 0; trial < trials; trial++ {
				seed := g.Seed + int64(trial)
				values, err := dataset.Generate(g.DataType, g.DataSize, seed)
				if err != nil {
					return Candidate{}, nil, err
				}
				sorter, err := reg.Get(g.Algorithm)
				if err != nil {
					return Candidate{}, nil, err
				}
				eng := algo.New(sorter)
				opts := algo.Options{
					Seed:            seed,
					PivotPolicy:     pivot,
					InsertionCutoff: cutoff,
				}
				if _, err := eng.Execute(ctx, values, opts); err != nil {
					return Candidate{}, nil, err
				}
				total += cost(eng.Metrics())
			}
			avg := total / float64(trials)

			evals = append(evals, Evaluation{Candidate: cand, Cost: avg})
			if avg < bestCost {
				bestCost = avg
				best = cand
			}
		}
	}

	return best, evals, nil
}
