package experiment

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/algo"
)

const scenarioYAML = `name: smoke
description: quick batch over two inputs
runs:
  - algorithm: insertion
    data_type: nearly-sorted
    data_size: 32
    seed: 1
    trials: 2
  - algorithm: quick
    data_type: random
    data_size: 64
    seed: 1
    pivot_policy: last
`

func loadTestScenario(t *testing.T) *Scenario {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadScenario(t *testing.T) {
	s := loadTestScenario(t)
	if s.Name != "smoke" {
		t.Errorf("name = %s, want smoke", s.Name)
	}
	if len(s.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(s.Runs))
	}
	if s.Runs[1].PivotPolicy != "last" {
		t.Errorf("pivot policy = %s, want last", s.Runs[1].PivotPolicy)
	}
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without runs")
	}
}

func TestRunScenario(t *testing.T) {
	s := loadTestScenario(t)
	results, err := RunScenario(context.Background(), s, algo.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Metrics.Comparisons == 0 {
			t.Errorf("%s recorded no comparisons", r.Algorithm)
		}
		if r.Steps == 0 {
			t.Errorf("%s recorded no steps", r.Algorithm)
		}
	}
	if results[0].Trials != 2 {
		t.Errorf("trials = %d, want 2", results[0].Trials)
	}
}

func TestRunScenarioUnknownAlgorithm(t *testing.T) {
	s := &Scenario{Name: "bad", Runs: []Run{{Algorithm: "nope", DataType: "random", DataSize: 8}}}
	if _, err := RunScenario(context.Background(), s, algo.NewRegistry()); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRunScenarioParallelMatchesSerial(t *testing.T) {
	s := loadTestScenario(t)
	reg := algo.NewRegistry()

	serial, err := RunScenario(context.Background(), s, reg)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := RunScenarioParallel(context.Background(), s, reg, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(parallel) != len(serial) {
		t.Fatalf("parallel results = %d, want %d", len(parallel), len(serial))
	}
	for i := range serial {
		if parallel[i].Algorithm != serial[i].Algorithm {
			t.Errorf("result %d out of order: %s", i, parallel[i].Algorithm)
		}
		if parallel[i].Metrics.Comparisons != serial[i].Metrics.Comparisons {
			t.Errorf("%s comparisons %d != %d", serial[i].Algorithm,
				parallel[i].Metrics.Comparisons, serial[i].Metrics.Comparisons)
		}
		if parallel[i].Steps != serial[i].Steps {
			t.Errorf("%s steps %d != %d", serial[i].Algorithm, parallel[i].Steps, serial[i].Steps)
		}
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	s := loadTestScenario(t)
	results, err := RunScenario(context.Background(), s, algo.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, results); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "insertion,nearly-sorted,32,2,") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
