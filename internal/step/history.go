package step

import "fmt"

// DefaultCheckpointInterval bounds replay cost for random seeks.
const DefaultCheckpointInterval = 256

// History is the ordered record of one execution: the originating input
// plus every emitted Step. Append-only while a run is live, randomly
// seekable afterward. Snapshots are attached at coarse checkpoints so a
// seek replays at most one checkpoint interval of steps.
type History struct {
	initial    []float64
	steps      []Step
	checkpoint int
}

func NewHistory(initial []float64, checkpointInterval int) *History {
	if checkpointInterval <= 0 {
		checkpointInterval = DefaultCheckpointInterval
	}
	c := make([]float64, len(initial))
	copy(c, initial)
	return &History{initial: c, checkpoint: checkpointInterval}
}

// Initial returns a copy of the originating array.
func (h *History) Initial() []float64 {
	c := make([]float64, len(h.initial))
	copy(c, h.initial)
	return c
}

func (h *History) Len() int { return len(h.steps) }

func (h *History) Step(i int) Step { return h.steps[i] }

// CheckpointDue reports whether the next appended step should carry a
// snapshot. The engine owns the working array, so it attaches snapshots.
func (h *History) CheckpointDue() bool {
	return len(h.steps)%h.checkpoint == 0
}

func (h *History) Append(s Step) {
	h.steps = append(h.steps, s)
}

// At returns the array state after applying steps [0..pos]. pos == -1
// yields the initial array. Replay starts from the nearest snapshot at
// or before pos rather than from the beginning.
func (h *History) At(pos int) ([]float64, error) {
	if pos < -1 || pos >= len(h.steps) {
		return nil, fmt.Errorf("history position %d out of range [-1, %d)", pos, len(h.steps))
	}
	arr := h.Initial()
	start := 0
	for i := pos; i >= 0; i-- {
		if h.steps[i].Snapshot != nil {
			copy(arr, h.steps[i].Snapshot)
			start = i + 1
			break
		}
	}
	for i := start; i <= pos; i++ {
		Apply(arr, h.steps[i])
	}
	return arr, nil
}

// Final replays the whole history. This is the determinism law: the
// recorded steps alone reconstruct the output array.
func (h *History) Final() []float64 {
	arr := h.Initial()
	for _, s := range h.steps {
		Apply(arr, s)
	}
	return arr
}

// Recount recomputes counters from the recorded steps. Matching the
// live Metrics of the producing engine is a correctness check: no
// operation may bypass instrumentation.
func (h *History) Recount() Metrics {
	var m Metrics
	for _, s := range h.steps {
		m.Count(s.Kind)
	}
	return m
}
