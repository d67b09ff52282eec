package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/render"
	"github.com/san-kum/sortviz/internal/step"
)

func executedEngine(t *testing.T) *algo.Engine {
	t.Helper()
	eng := algo.New(algo.NewBubble())
	if _, err := eng.Execute(context.Background(), []float64{5, 2, 4, 1, 3}, algo.Options{}); err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestStepsCSVRoundTripReplays(t *testing.T) {
	eng := executedEngine(t)
	h := eng.History()

	var buf bytes.Buffer
	if err := WriteStepsCSV(&buf, h); err != nil {
		t.Fatal(err)
	}

	steps, err := ReadStepsCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != h.Len() {
		t.Fatalf("round trip produced %d steps, want %d", len(steps), h.Len())
	}

	arr := h.Initial()
	for _, s := range steps {
		step.Apply(arr, s)
	}
	want := h.Final()
	for i := range want {
		if arr[i] != want[i] {
			t.Fatalf("replayed trace = %v, want %v", arr, want)
		}
	}
}

func TestStepsCSVRunningCounters(t *testing.T) {
	eng := executedEngine(t)

	var buf bytes.Buffer
	if err := WriteStepsCSV(&buf, eng.History()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "step,kind,indices,values,comparisons,swaps,reads,writes" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	// the last row carries the totals
	last := strings.Split(lines[len(lines)-1], ",")
	m := eng.Metrics()
	if last[4] != strconv.FormatUint(m.Comparisons, 10) || last[5] != strconv.FormatUint(m.Swaps, 10) {
		t.Errorf("final counters %v do not match metrics %+v", last[4:6], m)
	}
}

func TestRunJSON(t *testing.T) {
	eng := executedEngine(t)
	run := NewRun(eng, "random", 42)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, run); err != nil {
		t.Fatal(err)
	}

	var decoded Run
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Algorithm != "bubble" {
		t.Errorf("algorithm = %s, want bubble", decoded.Algorithm)
	}
	if decoded.Seed != 42 || decoded.DataSize != 5 {
		t.Errorf("run shape lost: %+v", decoded)
	}
	if decoded.Metrics.Comparisons != eng.Metrics().Comparisons {
		t.Error("metrics lost in round trip")
	}
	want := []float64{1, 2, 3, 4, 5}
	for i, v := range want {
		if decoded.Final[i] != v {
			t.Fatalf("final = %v, want %v", decoded.Final, want)
		}
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := render.NewCanvas(4, 2)
	c.Set(0, 0, palette.RGBA{R: 1, A: 1})
	c.Set(3, 5, palette.RGBA{G: 1, A: 1})

	svg := CanvasToSVG(c, 4)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, "#ff0000") {
		t.Error("missing red dot color")
	}
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should produce empty output")
	}
}

func TestBarsToSVG(t *testing.T) {
	svg := BarsToSVG([]float64{1, 2, 3}, palette.SchemeRainbow, 300, 100)
	if got := strings.Count(svg, "<rect"); got != 4 { // background + 3 bars
		t.Errorf("expected 4 rects, got %d", got)
	}
	if BarsToSVG(nil, palette.SchemeRainbow, 300, 100) != "" {
		t.Error("empty input should produce empty output")
	}
}
