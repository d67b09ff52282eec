package experiment

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/sortviz/internal/algo"
)

// RunScenarioParallel executes scenario runs concurrently, bounded by
// workers (GOMAXPROCS when zero or negative). Runs are independent;
// results keep scenario order regardless of completion order, and the
// first error wins.
func RunScenarioParallel(ctx context.Context, scenario *Scenario, reg *algo.Registry, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(scenario.Runs))
	errs := make([]error, len(scenario.Runs))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, run := range scenario.Runs {
		wg.Add(1)
		go func(idx int, run Run) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = runOne(ctx, reg, run)
		}(i, run)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
