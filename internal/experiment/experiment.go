// Package experiment runs scripted batches of instrumented sorts and
// summarizes their cost.
package experiment

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/step"
)

// Scenario is a scripted batch loaded from YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Run  `yaml:"runs"`
}

// Run is one entry in a scenario.
type Run struct {
	Algorithm       string `yaml:"algorithm"`
	DataType        string `yaml:"data_type"`
	DataSize        int    `yaml:"data_size"`
	Seed            int64  `yaml:"seed"`
	Trials          int    `yaml:"trials"`
	PivotPolicy     string `yaml:"pivot_policy"`
	InsertionCutoff int    `yaml:"insertion_cutoff"`
}

// Result is the averaged outcome of one scenario run.
type Result struct {
	Algorithm string
	DataType  string
	DataSize  int
	Trials    int
	Metrics   step.Metrics
	Steps     int
	Elapsed   time.Duration
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every run in order. Trials vary the seed
// deterministically; counters in the result are averaged across them.
func RunScenario(ctx context.Context, scenario *Scenario, reg *algo.Registry) ([]Result, error) {
	results := make([]Result, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		res, err := runOne(ctx, reg, run)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func runOne(ctx context.Context, reg *algo.Registry, run Run) (Result, error) {
	trials := run.Trials
	if trials < 1 {
		trials = 1
	}

	var acc Result
	acc.Algorithm = run.Algorithm
	acc.DataType = run.DataType
	acc.DataSize = run.DataSize
	acc.Trials = trials

	for trial := 0; trial < trials; trial++ {
		seed := run.Seed + int64(trial)
		values, err := dataset.Generate(dataset.Kind(run.DataType), run.DataSize, seed)
		if err != nil {
			return acc, err
		}

		sorter, err := reg.Get(run.Algorithm)
		if err != nil {
			return acc, err
		}

		eng := algo.New(sorter)
		opts := algo.Options{
			Seed:            seed,
			PivotPolicy:     algo.PivotPolicy(run.PivotPolicy),
			InsertionCutoff: run.InsertionCutoff,
		}
		if _, err := eng.Execute(ctx, values, opts); err != nil {
			return acc, err
		}

		m := eng.Metrics()
		acc.Metrics.Comparisons += m.Comparisons
		acc.Metrics.Swaps += m.Swaps
		acc.Metrics.Reads += m.Reads
		acc.Metrics.Writes += m.Writes
		acc.Elapsed += m.Elapsed
		acc.Steps += eng.History().Len()
	}

	acc.Metrics.Comparisons /= uint64(trials)
	acc.Metrics.Swaps /= uint64(trials)
	acc.Metrics.Reads /= uint64(trials)
	acc.Metrics.Writes /= uint64(trials)
	acc.Elapsed /= time.Duration(trials)
	acc.Steps /= trials

	return acc, nil
}

// WriteSummaryCSV emits one row per scenario run.
func WriteSummaryCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"algorithm", "data_type", "data_size", "trials", "comparisons", "swaps", "reads", "writes", "steps", "elapsed_ms"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Algorithm,
			r.DataType,
			strconv.Itoa(r.DataSize),
			strconv.Itoa(r.Trials),
			strconv.FormatUint(r.Metrics.Comparisons, 10),
			strconv.FormatUint(r.Metrics.Swaps, 10),
			strconv.FormatUint(r.Metrics.Reads, 10),
			strconv.FormatUint(r.Metrics.Writes, 10),
			strconv.Itoa(r.Steps),
			strconv.FormatFloat(float64(r.Elapsed.Microseconds())/1000, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
