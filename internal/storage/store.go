// Package storage persists completed runs under a base directory, one
// subdirectory per run holding metadata.json and steps.csv.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/step"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes a run's metadata and full step trace. The returned run
// ID names the subdirectory.
func (s *Store) Save(run export.Run, h *step.History) (string, error) {
	runID := fmt.Sprintf("%s_%d", run.Algorithm, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := export.SaveJSON(filepath.Join(runDir, "metadata.json"), run); err != nil {
		return "", err
	}
	if err := export.SaveStepsCSV(filepath.Join(runDir, "steps.csv"), h); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every stored run's metadata, newest first. Entries that
// fail to parse are skipped rather than failing the whole listing.
func (s *Store) List() ([]export.Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []export.Run{}, nil
		}
		return nil, err
	}

	runs := make([]export.Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var run export.Run
		if err := json.Unmarshal(data, &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*export.Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var run export.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadHistory rebuilds a replayable history from a stored step trace.
func (s *Store) LoadHistory(runID string) (*step.History, error) {
	run, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	steps, err := export.ReadStepsCSV(file)
	if err != nil {
		return nil, err
	}

	h := step.NewHistory(run.Initial, 0)
	for _, st := range steps {
		h.Append(st)
	}
	return h, nil
}
