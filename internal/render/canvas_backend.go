package render

import (
	"time"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
)

// View selects how the canvas backend draws the array.
type View string

const (
	ViewBars   View = "bars"
	ViewWire3D View = "wire3d"
)

// CanvasBackend rasterizes bars onto a braille canvas with immediate-
// mode drawing. It is the guaranteed-available fallback and the right
// choice for small data sizes where GPU setup cost outweighs benefit.
type CanvasBackend struct {
	state       *State
	canvas      *Canvas
	view        View
	cam         *Camera
	smoothed    []float64 // lerped heights for the 3-D view
	maxElements int

	fps       fpsTracker
	rendered  int
	renderDur time.Duration
	ready     bool
}

func NewCanvasBackend(width, height int) *CanvasBackend {
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	return &CanvasBackend{
		state:       NewState(),
		canvas:      NewCanvas(width, height),
		view:        ViewBars,
		cam:         NewCamera(),
		maxElements: width * 2,
	}
}

func (b *CanvasBackend) Name() string    { return "canvas" }
func (b *CanvasBackend) Available() bool { return true }

func (b *CanvasBackend) Init() error {
	b.ready = true
	return nil
}

func (b *CanvasBackend) SetData(values []float64, opts Options) {
	values = truncate(values, b.maxElements, b.Name())
	b.state.SetData(values, opts)
	b.smoothed = make([]float64, len(values))
	for i := range b.smoothed {
		b.smoothed[i] = b.state.Height01(i)
	}
}

func (b *CanvasBackend) Apply(s step.Step, m step.Metrics) {
	b.state.Apply(s, time.Now())
}

func (b *CanvasBackend) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	b.canvas = NewCanvas(width, height)
	b.maxElements = width * 2
}

func (b *CanvasBackend) Dispose() {
	b.ready = false
	b.state = NewState()
}

func (b *CanvasBackend) FrameMetrics() FrameMetrics {
	return FrameMetrics{
		FPS:              b.fps.fps,
		RenderTime:       b.renderDur,
		ElementsRendered: b.rendered,
	}
}

// SetView switches between flat bars and the rotating 3-D wireframe.
func (b *CanvasBackend) SetView(v View) { b.view = v }
func (b *CanvasBackend) CurrentView() View { return b.view }

// State exposes the animation model to the driver for replay.
func (b *CanvasBackend) State() *State { return b.state }

func (b *CanvasBackend) Render(now time.Time) error {
	start := time.Now()
	b.state.Advance(now)
	b.canvas.Clear()

	n := len(b.state.Elements)
	b.rendered = n
	if n > 0 {
		switch b.view {
		case ViewWire3D:
			b.renderWire()
		default:
			b.renderBars()
		}
	}

	b.renderDur = time.Since(start)
	b.fps.tick(now)
	return nil
}

func (b *CanvasBackend) renderBars() {
	n := len(b.state.Elements)
	subW := b.canvas.Width * 2
	subH := b.canvas.Height * 4
	slot := float64(subW) / float64(n)

	for i := range b.state.Elements {
		e := &b.state.Elements[i]
		h := int(b.state.Height01(i) * float64(subH-1))
		x0 := int(e.Current * slot)
		x1 := int((e.Current+1)*slot) - 1
		if x1 < x0 {
			x1 = x0
		}
		col := b.state.ColorOf(i)
		b.canvas.FillRect(x0, subH-1-h, x1, subH-1, col)
	}
}

// renderWire draws each element as an extruded box whose height encodes
// value, viewed by a slowly orbiting camera. Heights are smoothed with
// a fixed lerp factor instead of snapped; this trades exact-frame
// accuracy for visual continuity.
func (b *CanvasBackend) renderWire() {
	const lerp = 0.1
	n := len(b.state.Elements)
	if len(b.smoothed) != n {
		b.smoothed = make([]float64, n)
	}
	b.cam.Orbit(0.015)

	wf := NewWireframe()
	span := 24.0
	bw := span / float64(n)
	for i := range b.state.Elements {
		e := &b.state.Elements[i]
		b.smoothed[i] += (b.state.Height01(i) - b.smoothed[i]) * lerp
		h := b.smoothed[i] * 12
		x := -span/2 + e.Current*bw
		wf.AddBox(
			Vec3{X: x, Y: 0, Z: -bw / 2},
			Vec3{X: x + bw*0.85, Y: h, Z: bw / 2},
			b.state.ColorOf(i),
		)
	}
	wf.Draw(b.canvas, b.cam)
}

// View returns the rendered frame as a styled string for the terminal.
func (b *CanvasBackend) View() string {
	return b.canvas.String()
}
