package render

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	col := palette.RGBA{R: 1, A: 1}
	c.Set(0, 0, col)
	if c.Grid[0][0] == 0x2800 {
		t.Error("pixel not set")
	}
	c.Set(-1, -5, col) // out of range is a no-op
	c.Set(100, 100, col)
	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("clear did not reset cell")
	}
}

func TestCanvasStringDimensions(t *testing.T) {
	c := NewCanvas(10, 3)
	out := c.String()
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 2 newlines, got %d", got)
	}
}

func TestCanvasBackendRenderNeverFailsAcrossSizes(t *testing.T) {
	b := NewCanvasBackend(40, 12)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Dispose()

	for _, size := range []int{0, 1, 2, 7, 40, 80} {
		values := make([]float64, size)
		for i := range values {
			values[i] = float64(i%10 + 1)
		}
		b.SetData(values, Options{Reset: true})
		if err := b.Render(time.Now()); err != nil {
			t.Errorf("render failed for size %d: %v", size, err)
		}
		if b.View() == "" && size > 0 {
			t.Errorf("empty frame for size %d", size)
		}
	}
}

func TestCanvasBackendTruncatesDeterministically(t *testing.T) {
	b := NewCanvasBackend(10, 5) // cap is width*2 = 20 elements
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Dispose()

	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i + 1)
	}
	b.SetData(values, Options{Reset: true})
	if got := len(b.State().Elements); got != 20 {
		t.Errorf("expected truncation to 20 elements, got %d", got)
	}
	// prefix truncation keeps the first values
	if b.State().Elements[0].Value != 1 || b.State().Elements[19].Value != 20 {
		t.Error("truncation is not a deterministic prefix")
	}
}

func TestCanvasBackendWireViewRenders(t *testing.T) {
	b := NewCanvasBackend(40, 12)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Dispose()

	b.SetData([]float64{3, 1, 4, 1, 5}, Options{Reset: true})
	b.SetView(ViewWire3D)
	if err := b.Render(time.Now()); err != nil {
		t.Fatal(err)
	}
	if b.CurrentView() != ViewWire3D {
		t.Error("view not switched")
	}
}

func TestCanvasBackendApplyAndMetrics(t *testing.T) {
	b := NewCanvasBackend(40, 12)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Dispose()

	b.SetData([]float64{2, 1}, Options{Reset: true})
	b.Apply(step.Step{Kind: step.KindSwap, Indices: []int{0, 1}}, step.Metrics{})
	if err := b.Render(time.Now()); err != nil {
		t.Fatal(err)
	}
	fm := b.FrameMetrics()
	if fm.ElementsRendered != 2 {
		t.Errorf("elements rendered = %d, want 2", fm.ElementsRendered)
	}
}

func TestCanvasResizeChangesCap(t *testing.T) {
	b := NewCanvasBackend(10, 5)
	b.Resize(30, 8)
	if b.maxElements != 60 {
		t.Errorf("cap after resize = %d, want 60", b.maxElements)
	}
	b.Resize(0, 0) // invalid sizes ignored
	if b.maxElements != 60 {
		t.Error("invalid resize should be ignored")
	}
}
