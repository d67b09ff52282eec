// Package render bridges the discrete step stream to continuously
// animated frames. One Backend owns the device resources for one draw
// target; the Driver owns exactly one Backend and feeds it steps.
package render

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
)

// Mode selects a backend implementation.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeCanvas  Mode = "canvas"
	ModeGL      Mode = "gl"
	ModeScene3D Mode = "scene3d"
)

func Modes() []Mode { return []Mode{ModeCanvas, ModeGL, ModeScene3D} }

// Options configures SetData. Reset rebuilds the per-element state with
// every element at its slot; without Reset only values and colors are
// re-derived and in-flight animation positions survive.
type Options struct {
	Reset        bool
	Scheme       palette.Scheme
	Easing       string
	SwapDuration time.Duration
}

// FrameMetrics is per-backend observability.
type FrameMetrics struct {
	FPS              float64
	RenderTime       time.Duration
	ElementsRendered int
	BufferUpdates    uint64
}

// Backend is the common render contract. Implementations must release
// every owned device resource in Dispose, and a failed Init must leave
// nothing allocated so the Driver can fall back cleanly.
type Backend interface {
	Name() string
	Available() bool
	Init() error
	SetData(values []float64, opts Options)
	Apply(s step.Step, m step.Metrics)
	Render(now time.Time) error
	Resize(width, height int)
	Dispose()
	FrameMetrics() FrameMetrics
}

// Factory builds a backend for a mode. Hosts inject the factory so the
// Driver never depends on a concrete variant.
type Factory func(mode Mode) (Backend, error)

// truncate enforces a backend's element cap: deterministic prefix
// truncation with a warning, never an error.
func truncate(values []float64, max int, backend string) []float64 {
	if max <= 0 || len(values) <= max {
		return values
	}
	fmt.Fprintf(os.Stderr, "warning: %s backend supports %d elements, truncating %d\n",
		backend, max, len(values))
	return values[:max]
}

// fpsTracker keeps an exponential moving average of frame rate.
type fpsTracker struct {
	last time.Time
	fps  float64
}

func (f *fpsTracker) tick(now time.Time) {
	if !f.last.IsZero() {
		if dt := now.Sub(f.last).Seconds(); dt > 0 {
			inst := 1 / dt
			if f.fps == 0 {
				f.fps = inst
			} else {
				f.fps = f.fps*0.9 + inst*0.1
			}
		}
	}
	f.last = now
}
