package algo

import (
	"github.com/san-kum/sortviz/internal/step"
)

// Metric is a derived, pluggable observation over the step stream,
// attached to an engine through AddObserver.
type Metric interface {
	Name() string
	OnStep(s step.Step, m step.Metrics)
	Value() float64
	Reset()
}

// Disorder estimates the fraction of inverted pairs, sampled on
// geometric strides so each snapshot costs O(n log n) pairs at most.
// 0 means sorted, values near 0.5 mean shuffled.
type Disorder struct {
	frac float64
}

func NewDisorder() *Disorder { return &Disorder{} }

func (d *Disorder) Name() string { return "disorder" }

func (d *Disorder) OnStep(s step.Step, m step.Metrics) {
	n := len(s.Snapshot)
	if n < 2 {
		return
	}
	pairs, inverted := 0, 0
	for gap := 1; gap < n; gap = gap*2 + 1 {
		for i := 0; i+gap < n; i++ {
			pairs++
			if s.Snapshot[i] > s.Snapshot[i+gap] {
				inverted++
			}
		}
	}
	d.frac = float64(inverted) / float64(pairs)
}

func (d *Disorder) Value() float64 { return d.frac }
func (d *Disorder) Reset()         { d.frac = 0 }

// RunCount tracks the number of maximal non-decreasing runs in the
// array, recomputed at snapshot steps. 1 means sorted.
type RunCount struct {
	runs float64
}

func NewRunCount() *RunCount { return &RunCount{} }

func (r *RunCount) Name() string { return "runs" }

func (r *RunCount) OnStep(s step.Step, m step.Metrics) {
	if len(s.Snapshot) == 0 {
		return
	}
	runs := 1
	for i := 1; i < len(s.Snapshot); i++ {
		if s.Snapshot[i] < s.Snapshot[i-1] {
			runs++
		}
	}
	r.runs = float64(runs)
}

func (r *RunCount) Value() float64 { return r.runs }
func (r *RunCount) Reset()         { r.runs = 0 }

// SwapDistance records the maximum index distance moved by any single
// swap, a rough locality measure per algorithm.
type SwapDistance struct {
	max float64
}

func NewSwapDistance() *SwapDistance { return &SwapDistance{} }

func (d *SwapDistance) Name() string { return "max_swap_distance" }

func (d *SwapDistance) OnStep(s step.Step, m step.Metrics) {
	if s.Kind != step.KindSwap || len(s.Indices) != 2 {
		return
	}
	dist := float64(s.Indices[1] - s.Indices[0])
	if dist < 0 {
		dist = -dist
	}
	if dist > d.max {
		d.max = dist
	}
}

func (d *SwapDistance) Value() float64 { return d.max }
func (d *SwapDistance) Reset()         { d.max = 0 }

// observerFunc adapts a bare function to Observer.
type observerFunc func(s step.Step, m step.Metrics)

func (f observerFunc) OnStep(s step.Step, m step.Metrics) { f(s, m) }

// ObserverFunc wraps fn as an Observer.
func ObserverFunc(fn func(s step.Step, m step.Metrics)) Observer {
	return observerFunc(fn)
}

// MetricObserver adapts a Metric to the engine Observer interface.
func MetricObserver(m Metric) Observer {
	return observerFunc(m.OnStep)
}
