// Package export writes completed runs to interchange formats: a CSV
// step trace, a JSON run document, and SVG snapshots of the final
// frame.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/step"
)

// Run is the self-contained description of one execution, sufficient
// to replay it elsewhere.
type Run struct {
	Algorithm string       `json:"algorithm"`
	Info      algo.Info    `json:"info"`
	DataType  string       `json:"dataType"`
	DataSize  int          `json:"dataSize"`
	Seed      int64        `json:"seed"`
	Timestamp time.Time    `json:"timestamp"`
	Metrics   step.Metrics `json:"metrics"`
	Initial   []float64    `json:"initial"`
	Final     []float64    `json:"final"`
	Steps     int          `json:"steps"`
}

// NewRun assembles a Run from an executed engine and its input shape.
func NewRun(e *algo.Engine, dataType string, seed int64) Run {
	h := e.History()
	return Run{
		Algorithm: e.Info().Name,
		Info:      e.Info(),
		DataType:  dataType,
		DataSize:  len(h.Initial()),
		Seed:      seed,
		Timestamp: time.Now(),
		Metrics:   e.Metrics(),
		Initial:   h.Initial(),
		Final:     h.Final(),
		Steps:     h.Len(),
	}
}

func WriteJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func SaveJSON(path string, run Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, run)
}

// WriteStepsCSV emits one row per recorded step: ordinal, kind, the
// touched indices and values joined with ';', and the running metric
// counters so a row is interpretable without replaying its prefix.
func WriteStepsCSV(w io.Writer, h *step.History) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"step", "kind", "indices", "values", "comparisons", "swaps", "reads", "writes"}
	if err := cw.Write(header); err != nil {
		return err
	}

	var m step.Metrics
	for i := 0; i < h.Len(); i++ {
		s := h.Step(i)
		m.Count(s.Kind)
		row := []string{
			strconv.Itoa(i),
			string(s.Kind),
			joinInts(s.Indices),
			joinFloats(s.Values),
			strconv.FormatUint(m.Comparisons, 10),
			strconv.FormatUint(m.Swaps, 10),
			strconv.FormatUint(m.Reads, 10),
			strconv.FormatUint(m.Writes, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func SaveStepsCSV(path string, h *step.History) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteStepsCSV(file, h)
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ";")
}

// ReadStepsCSV parses a step trace back into steps. Snapshots are not
// stored in the CSV, so the result replays from the initial array.
func ReadStepsCSV(r io.Reader) ([]step.Step, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty step trace")
	}

	steps := make([]step.Step, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		s := step.Step{Kind: step.Kind(rec[1])}
		if rec[2] != "" {
			for _, part := range strings.Split(rec[2], ";") {
				n, err := strconv.Atoi(part)
				if err != nil {
					return nil, fmt.Errorf("bad index %q: %w", part, err)
				}
				s.Indices = append(s.Indices, n)
			}
		}
		if rec[3] != "" {
			for _, part := range strings.Split(rec[3], ";") {
				v, err := strconv.ParseFloat(part, 64)
				if err != nil {
					return nil, fmt.Errorf("bad value %q: %w", part, err)
				}
				s.Values = append(s.Values, v)
			}
		}
		steps = append(steps, s)
	}
	return steps, nil
}
