package algo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/sortviz/internal/step"
)

// Event names for On subscriptions.
const (
	EventStep          = "step"
	EventCompare       = "compare"
	EventSwap          = "swap"
	EventMaxIterations = "max-iterations"
)

const (
	DefaultInsertionCutoff = 12
	DefaultMaxIterations   = 500000
)

var ErrNilInput = errors.New("nil input array")

// Comparator orders two element values: negative if a<b, zero if equal,
// positive if a>b. It must be a strict total preorder; the engine never
// assumes numeric ordering itself.
type Comparator func(a, b float64) int

// NumericAscending is the default comparator.
func NumericAscending(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Options configures one execution.
type Options struct {
	Comparator         Comparator
	PivotPolicy        PivotPolicy
	InsertionCutoff    int
	MaxIterations      int
	CheckpointInterval int
	Seed               int64
}

// Observer receives every emitted step synchronously, in emission order.
type Observer interface {
	OnStep(s step.Step, m step.Metrics)
}

// Engine executes one Sorter over a working copy of the input while
// recording every comparison, read, write and swap into a History. All
// element access goes through the instrumented Ops facade; the engine
// itself never reorders anything.
type Engine struct {
	sorter    Sorter
	arr       []float64
	history   *step.History
	metrics   step.Metrics
	observers []Observer
	handlers  map[string][]func(step.Step)
	opts      Options
}

func New(s Sorter) *Engine {
	return &Engine{
		sorter:   s,
		handlers: make(map[string][]func(step.Step)),
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) On(event string, fn func(step.Step)) {
	e.handlers[event] = append(e.handlers[event], fn)
}

// Reset discards the run state. Counters restart from zero; a fresh
// Execute after Reset behaves exactly like a fresh engine.
func (e *Engine) Reset() {
	e.arr = nil
	e.history = nil
	e.metrics = step.Metrics{}
}

func (e *Engine) History() *step.History { return e.history }
func (e *Engine) Metrics() step.Metrics  { return e.metrics }
func (e *Engine) Info() Info             { return e.sorter.Info() }
func (e *Engine) Complexity() Complexity { return e.sorter.Info().Complexity }

// abort carries a cancellation or comparator failure out of the sorter.
type abort struct{ err error }

// emit is the single append/count/notify path for every step.
func (e *Engine) emit(s step.Step) {
	if s.Snapshot == nil && e.history.CheckpointDue() {
		s.Snapshot = append([]float64(nil), e.arr...)
	}
	e.history.Append(s)
	e.metrics.Count(s.Kind)
	for _, o := range e.observers {
		o.OnStep(s, e.metrics)
	}
	for _, fn := range e.handlers[EventStep] {
		fn(s)
	}
	var extra string
	switch s.Kind {
	case step.KindCompare:
		extra = EventCompare
	case step.KindSwap:
		extra = EventSwap
	case step.KindMaxIterations:
		extra = EventMaxIterations
	}
	if extra != "" {
		for _, fn := range e.handlers[extra] {
			fn(s)
		}
	}
}

// Execute runs the sorter over a copy of input and returns the result.
// The input slice is never mutated. On error the partial History up to
// the failure point stays inspectable through History().
func (e *Engine) Execute(ctx context.Context, input []float64, opts Options) (out []float64, err error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if opts.Comparator == nil {
		opts.Comparator = NumericAscending
	}
	if opts.InsertionCutoff <= 0 {
		opts.InsertionCutoff = DefaultInsertionCutoff
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	e.opts = opts

	e.arr = append([]float64(nil), input...)
	e.history = step.NewHistory(e.arr, opts.CheckpointInterval)
	e.metrics = step.Metrics{}
	start := time.Now()

	defer func() {
		e.metrics.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			if a, ok := r.(abort); ok {
				err = a.err
				return
			}
			err = fmt.Errorf("comparator failed: %v", r)
		}
	}()

	e.emit(step.Step{Kind: step.KindInitial, Snapshot: append([]float64(nil), e.arr...)})

	o := &Ops{eng: e, ctx: ctx, rng: rand.New(rand.NewSource(opts.Seed))}
	if err := e.sorter.Sort(o); err != nil {
		return nil, err
	}

	if !o.gaveUp {
		e.emit(step.Step{Kind: step.KindFinal, Snapshot: append([]float64(nil), e.arr...)})
	}
	e.metrics.Elapsed = time.Since(start)
	return append([]float64(nil), e.arr...), nil
}

// Ops is the instrumented facade handed to a Sorter. It is the only
// path by which a sorter may inspect or move elements.
type Ops struct {
	eng    *Engine
	ctx    context.Context
	rng    *rand.Rand
	gaveUp bool
}

func (o *Ops) check() {
	if err := o.ctx.Err(); err != nil {
		panic(abort{err})
	}
}

func (o *Ops) Len() int { return len(o.eng.arr) }

// Compare orders the elements at i and j through the configured
// comparator, recording exactly one comparison.
func (o *Ops) Compare(i, j int) int {
	o.check()
	a, b := o.eng.arr[i], o.eng.arr[j]
	r := o.eng.opts.Comparator(a, b)
	o.eng.emit(step.Step{Kind: step.KindCompare, Indices: []int{i, j}, Values: []float64{a, b}})
	return r
}

func (o *Ops) Less(i, j int) bool { return o.Compare(i, j) < 0 }

// CompareValues orders two raw values (for merge buffers whose elements
// are temporarily outside the array). Still one recorded comparison.
func (o *Ops) CompareValues(a, b float64) int {
	o.check()
	r := o.eng.opts.Comparator(a, b)
	o.eng.emit(step.Step{Kind: step.KindCompare, Values: []float64{a, b}})
	return r
}

func (o *Ops) Read(i int) float64 {
	v := o.eng.arr[i]
	o.eng.emit(step.Step{Kind: step.KindRead, Indices: []int{i}, Values: []float64{v}})
	return v
}

func (o *Ops) Write(i int, v float64) {
	o.eng.arr[i] = v
	o.eng.emit(step.Step{Kind: step.KindWrite, Indices: []int{i}, Values: []float64{v}})
}

func (o *Ops) Swap(i, j int) {
	o.check()
	e := o.eng
	e.arr[i], e.arr[j] = e.arr[j], e.arr[i]
	e.emit(step.Step{Kind: step.KindSwap, Indices: []int{i, j}, Values: []float64{e.arr[i], e.arr[j]}})
}

// Mark records a marker step with a full snapshot of the current state.
func (o *Ops) Mark(k step.Kind, indices []int, meta map[string]any) {
	o.eng.emit(step.Step{
		Kind:     k,
		Indices:  indices,
		Meta:     meta,
		Snapshot: append([]float64(nil), o.eng.arr...),
	})
}

// GiveUp records the bounded-non-termination terminal marker. Not an
// error: the caller distinguishes "sorted" from "gave up" by the final
// step kind.
func (o *Ops) GiveUp(iterations int) {
	o.gaveUp = true
	o.Mark(step.KindMaxIterations, nil, map[string]any{"iterations": iterations})
}

func (o *Ops) Rng() *rand.Rand    { return o.rng }
func (o *Ops) Cutoff() int        { return o.eng.opts.InsertionCutoff }
func (o *Ops) Pivot() PivotPolicy { return o.eng.opts.PivotPolicy }
func (o *Ops) MaxIterations() int { return o.eng.opts.MaxIterations }
