package render

import (
	"time"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
)

// DefaultSwapDuration is the wall-clock length of one swap animation
// before speed scaling.
const DefaultSwapDuration = 300 * time.Millisecond

// Element is the visual state of one logical array slot: its value, its
// highlight class, and an animated position in slot units.
type Element struct {
	Value    float64
	Class    palette.Class
	Current  float64 // animated position, in slot units
	Target   float64
	Progress float64 // [0,1], 1 = idle

	start   float64
	startAt time.Time
}

// State is the shared animation model behind every backend. A swap
// exchanges only target positions; each frame Advance eases current
// positions toward targets, and overlapping swaps restart from the
// current interpolated position so bars never jump.
type State struct {
	Elements     []Element
	Scheme       palette.Scheme
	Easing       string
	SwapDuration time.Duration

	maxValue float64
	sorted   bool
}

func NewState() *State {
	return &State{
		Scheme:       palette.SchemeRainbow,
		Easing:       palette.DefaultEasing,
		SwapDuration: DefaultSwapDuration,
	}
}

// SetData loads values. With opts.Reset every element is rebuilt idle at
// its own slot; without it values and colors are refreshed in place and
// in-flight positions are preserved.
func (st *State) SetData(values []float64, opts Options) {
	if opts.Scheme != "" {
		st.Scheme = opts.Scheme
	}
	if opts.Easing != "" {
		st.Easing = opts.Easing
	}
	if opts.SwapDuration > 0 {
		st.SwapDuration = opts.SwapDuration
	}
	st.sorted = false

	if opts.Reset || len(values) != len(st.Elements) {
		st.Elements = make([]Element, len(values))
		for i, v := range values {
			st.Elements[i] = Element{Value: v, Current: float64(i), Target: float64(i), Progress: 1}
		}
	} else {
		for i, v := range values {
			st.Elements[i].Value = v
			st.Elements[i].Class = palette.ClassNormal
		}
	}
	st.recomputeMax()
}

func (st *State) recomputeMax() {
	st.maxValue = 0
	for i := range st.Elements {
		if st.Elements[i].Value > st.maxValue {
			st.maxValue = st.Elements[i].Value
		}
	}
}

// Height01 returns the normalized bar height for slot i.
func (st *State) Height01(i int) float64 {
	if st.maxValue <= 0 {
		return 0
	}
	return st.Elements[i].Value / st.maxValue
}

// ColorOf resolves the current color for slot i with highlight
// precedence applied.
func (st *State) ColorOf(i int) palette.RGBA {
	e := &st.Elements[i]
	return palette.ColorFor(st.Scheme, e.Class, st.Height01(i), i, len(st.Elements))
}

// Apply folds one step into the visual state. Transient highlights from
// the previous step are cleared first; logical order is preserved even
// when several steps land between two frames.
func (st *State) Apply(s step.Step, now time.Time) {
	st.clearTransient()
	n := len(st.Elements)
	in := func(i int) bool { return i >= 0 && i < n }

	switch s.Kind {
	case step.KindCompare:
		for _, i := range s.Indices {
			if in(i) {
				st.Elements[i].Class = palette.ClassComparing
			}
		}
	case step.KindRead:
		if len(s.Indices) == 1 && in(s.Indices[0]) {
			st.Elements[s.Indices[0]].Class = palette.ClassReading
		}
	case step.KindWrite:
		if len(s.Indices) == 1 && len(s.Values) == 1 && in(s.Indices[0]) {
			i := s.Indices[0]
			st.Elements[i].Value = s.Values[0]
			st.Elements[i].Class = palette.ClassWriting
			if s.Values[0] > st.maxValue {
				st.maxValue = s.Values[0]
			}
		}
	case step.KindSwap:
		if len(s.Indices) == 2 && in(s.Indices[0]) && in(s.Indices[1]) {
			st.swap(s.Indices[0], s.Indices[1], now)
		}
	case step.KindPivot:
		if len(s.Indices) == 1 && in(s.Indices[0]) {
			st.Elements[s.Indices[0]].Class = palette.ClassPivot
		}
	case step.KindFinal:
		for i := range st.Elements {
			st.Elements[i].Class = palette.ClassSorted
		}
		st.sorted = true
	}
}

func (st *State) clearTransient() {
	for i := range st.Elements {
		switch st.Elements[i].Class {
		case palette.ClassComparing, palette.ClassReading, palette.ClassWriting:
			st.Elements[i].Class = palette.ClassNormal
		}
	}
}

// swap exchanges the logical contents of slots i and j and restarts
// their animations. The arriving value starts from the visual position
// of the slot it came from, interpolated if that slot was mid-flight:
// later target wins, never the pre-animation position.
func (st *State) swap(i, j int, now time.Time) {
	a, b := &st.Elements[i], &st.Elements[j]
	posI, posJ := a.Current, b.Current

	a.Value, b.Value = b.Value, a.Value
	a.Class, b.Class = b.Class, a.Class

	a.start, a.Current, a.Target = posJ, posJ, float64(i)
	b.start, b.Current, b.Target = posI, posI, float64(j)
	a.Progress, b.Progress = 0, 0
	a.startAt, b.startAt = now, now
}

// Advance eases every in-flight element toward its target. Elements
// that reach progress 1 snap exactly to target and go idle.
func (st *State) Advance(now time.Time) {
	dur := st.SwapDuration
	if dur <= 0 {
		dur = DefaultSwapDuration
	}
	for i := range st.Elements {
		e := &st.Elements[i]
		if e.Progress >= 1 {
			continue
		}
		t := now.Sub(e.startAt).Seconds() / dur.Seconds()
		if t >= 1 {
			e.Progress = 1
			e.Current = e.Target
			continue
		}
		if t < 0 {
			t = 0
		}
		e.Progress = t
		e.Current = e.start + (e.Target-e.start)*palette.Ease(st.Easing, t)
	}
}

// Idle reports whether every animation has settled.
func (st *State) Idle() bool {
	for i := range st.Elements {
		if st.Elements[i].Progress < 1 {
			return false
		}
	}
	return true
}

// Settle snaps every element to its target immediately. Used when a
// seek or reset cancels in-flight animation.
func (st *State) Settle() {
	for i := range st.Elements {
		e := &st.Elements[i]
		e.Current = e.Target
		e.Progress = 1
	}
}

// Sorted reports whether a final step has been applied.
func (st *State) Sorted() bool { return st.sorted }
