package render

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sortviz/internal/step"
)

const scene3DMaxElements = 1024

// Scene3DBackend represents each element as an extruded solid whose
// height encodes value, drawn inside the host window's frame. The
// camera orbits automatically. Heights and positions are smoothed with
// a fixed lerp factor (0.1) toward their targets each frame instead of
// snapped; this is a documented approximation favouring visual
// continuity over exact-frame accuracy.
type Scene3DBackend struct {
	state   *State
	camera  rl.Camera3D
	angle   float64
	heights []float32
	xs      []float32

	fps       fpsTracker
	rendered  int
	renderDur time.Duration
	ready     bool
}

func NewScene3DBackend() *Scene3DBackend {
	return &Scene3DBackend{state: NewState()}
}

func (b *Scene3DBackend) Name() string { return "scene3d" }

func (b *Scene3DBackend) Available() bool { return rl.IsWindowReady() }

func (b *Scene3DBackend) Init() error {
	if !rl.IsWindowReady() {
		return fmt.Errorf("scene3d: no window")
	}
	b.camera = rl.NewCamera3D(
		rl.NewVector3(0, 14, 26),
		rl.NewVector3(0, 4, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	b.ready = true
	return nil
}

func (b *Scene3DBackend) SetData(values []float64, opts Options) {
	values = truncate(values, scene3DMaxElements, b.Name())
	b.state.SetData(values, opts)
	b.heights = make([]float32, len(values))
	b.xs = make([]float32, len(values))
	for i := range values {
		b.heights[i] = float32(b.state.Height01(i)) * 10
		b.xs[i] = b.slotX(float64(i))
	}
}

func (b *Scene3DBackend) Apply(s step.Step, m step.Metrics) {
	b.state.Apply(s, time.Now())
}

func (b *Scene3DBackend) Resize(width, height int) {
	// raylib tracks the window size itself
}

func (b *Scene3DBackend) Dispose() {
	b.ready = false
	b.heights = nil
	b.xs = nil
}

func (b *Scene3DBackend) FrameMetrics() FrameMetrics {
	return FrameMetrics{
		FPS:              b.fps.fps,
		RenderTime:       b.renderDur,
		ElementsRendered: b.rendered,
	}
}

func (b *Scene3DBackend) State() *State { return b.state }

func (b *Scene3DBackend) slotX(slot float64) float32 {
	n := len(b.state.Elements)
	if n == 0 {
		return 0
	}
	span := 22.0
	return float32(-span/2 + (slot+0.5)*span/float64(n))
}

func (b *Scene3DBackend) Render(now time.Time) error {
	if !b.ready {
		return fmt.Errorf("scene3d backend not initialized")
	}
	start := time.Now()
	b.state.Advance(now)

	// slow automatic orbit
	b.angle += 0.003
	radius := float32(26.0)
	b.camera.Position.X = radius * float32(math.Sin(b.angle))
	b.camera.Position.Z = radius * float32(math.Cos(b.angle))

	n := len(b.state.Elements)
	b.rendered = n
	if len(b.heights) != n {
		b.heights = make([]float32, n)
		b.xs = make([]float32, n)
	}

	rl.BeginMode3D(b.camera)
	rl.DrawGrid(20, 1.5)
	const lerp = 0.1
	bw := float32(22.0 / float64(max(n, 1)) * 0.8)
	for i := range b.state.Elements {
		e := &b.state.Elements[i]
		b.heights[i] += (float32(b.state.Height01(i))*10 - b.heights[i]) * lerp
		b.xs[i] += (b.slotX(e.Current) - b.xs[i]) * lerp

		c := b.state.ColorOf(i).NRGBA()
		col := rl.NewColor(c.R, c.G, c.B, c.A)
		pos := rl.NewVector3(b.xs[i], b.heights[i]/2, 0)
		rl.DrawCube(pos, bw, b.heights[i], bw, col)
		rl.DrawCubeWires(pos, bw, b.heights[i], bw, rl.Fade(rl.White, 0.25))
	}
	rl.EndMode3D()

	b.renderDur = time.Since(start)
	b.fps.tick(now)
	return nil
}
