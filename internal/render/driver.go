package render

import (
	"fmt"
	"time"

	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
)

// Config is the constructor-injected visualization configuration. The
// driver and backends read it; they never own UI state.
type Config struct {
	Mode           Mode
	Scheme         palette.Scheme
	Easing         string
	AnimationSpeed float64 // 1.0 = normal; swap duration is divided by this
	Width, Height  int
}

// Driver owns exactly one active backend, reconciles the discrete step
// stream with per-frame rendering, and handles backend switching and
// fallback. Steps are applied strictly in recorded order; a frame may
// coalesce several pending steps into one visual update but never skips
// or reorders them.
type Driver struct {
	factory Factory
	backend Backend
	mode    Mode
	cfg     Config

	history *step.History
	pos     int // index of the last applied step, -1 before any
	pending []step.Step
	metrics step.Metrics

	sched frameScheduler
}

func NewDriver(factory Factory, cfg Config) *Driver {
	if cfg.AnimationSpeed <= 0 {
		cfg.AnimationSpeed = 1
	}
	return &Driver{factory: factory, cfg: cfg, pos: -1}
}

func (d *Driver) Backend() Backend { return d.backend }
func (d *Driver) Mode() Mode { return d.mode }
func (d *Driver) Metrics() step.Metrics { return d.metrics }
func (d *Driver) Position() int { return d.pos }
func (d *Driver) History() *step.History { return d.history }
func (d *Driver) PendingSteps() int { return len(d.pending) }

// Start selects and initializes the configured backend. A device
// failure is recovered once by falling back to the canvas backend; if
// that also fails the error is terminal.
func (d *Driver) Start() error {
	mode := d.cfg.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModeGL
	}
	if err := d.acquire(mode); err != nil {
		if mode == ModeCanvas {
			return err
		}
		fallbackErr := d.acquire(ModeCanvas)
		if fallbackErr != nil {
			return fmt.Errorf("backend %s failed (%v); canvas fallback failed: %w", mode, err, fallbackErr)
		}
	}
	return nil
}

func (d *Driver) acquire(mode Mode) error {
	b, err := d.factory(mode)
	if err != nil {
		return err
	}
	if err := b.Init(); err != nil {
		return err
	}
	d.backend = b
	d.mode = mode
	return nil
}

func (d *Driver) opts(reset bool) Options {
	return Options{
		Reset:        reset,
		Scheme:       d.cfg.Scheme,
		Easing:       d.cfg.Easing,
		SwapDuration: time.Duration(float64(DefaultSwapDuration) / d.cfg.AnimationSpeed),
	}
}

// Configure swaps the display configuration and reapplies the current
// position so scheme or speed changes take effect immediately.
func (d *Driver) Configure(cfg Config) error {
	if cfg.AnimationSpeed <= 0 {
		cfg.AnimationSpeed = 1
	}
	d.cfg = cfg
	if d.history != nil && d.backend != nil {
		return d.SeekTo(d.pos)
	}
	return nil
}

// SetHistory binds a run and loads its initial array.
func (d *Driver) SetHistory(h *step.History) {
	d.sched.cancel()
	d.history = h
	d.pos = -1
	d.pending = nil
	d.metrics = step.Metrics{}
	if d.backend != nil {
		d.backend.SetData(h.Initial(), d.opts(true))
	}
}

// Enqueue adds one live step; it is applied on the next frame. Intended
// as an engine step-event handler.
func (d *Driver) Enqueue(s step.Step) {
	d.pending = append(d.pending, s)
}

// Frame drains every pending step in order and renders once. Metrics
// stay exact regardless of how many steps one frame absorbs.
func (d *Driver) Frame(now time.Time) error {
	if d.backend == nil {
		return fmt.Errorf("no active backend")
	}
	for _, s := range d.pending {
		d.metrics.Count(s.Kind)
		d.backend.Apply(s, d.metrics)
		d.pos++
	}
	d.pending = d.pending[:0]
	return d.backend.Render(now)
}

// SeekTo jumps the visual state to the cumulative result of steps
// [0..pos]. Any in-flight animation frame request is cancelled first so
// no stale callback can mutate state afterward.
func (d *Driver) SeekTo(pos int) error {
	if d.history == nil {
		return fmt.Errorf("no history attached")
	}
	d.sched.cancel()
	d.pending = d.pending[:0]

	var arr []float64
	var err error
	if pos < 0 {
		pos = -1
		arr = d.history.Initial()
	} else {
		arr, err = d.history.At(pos)
		if err != nil {
			return err
		}
	}
	d.pos = pos
	d.backend.SetData(arr, d.opts(true))

	d.metrics = step.Metrics{}
	for i := 0; i <= pos; i++ {
		d.metrics.Count(d.history.Step(i).Kind)
	}
	return nil
}

// StepForward applies exactly one recorded step.
func (d *Driver) StepForward() error {
	if d.history == nil {
		return fmt.Errorf("no history attached")
	}
	if d.pos+1 >= d.history.Len() {
		return nil
	}
	d.pos++
	s := d.history.Step(d.pos)
	d.metrics.Count(s.Kind)
	d.backend.Apply(s, d.metrics)
	return nil
}

// StepBack rewinds one step via a cumulative seek.
func (d *Driver) StepBack() error {
	if d.pos < 0 {
		return nil
	}
	return d.SeekTo(d.pos - 1)
}

// SwitchMode disposes the current backend completely, constructs the
// next one, and replays the current history position's cumulative state
// into it, so switching render modes mid-run is visually seamless.
func (d *Driver) SwitchMode(mode Mode) error {
	if mode == d.mode && d.backend != nil {
		return nil
	}
	d.sched.cancel()
	if d.backend != nil {
		d.backend.Dispose()
		d.backend = nil
	}
	if err := d.acquire(mode); err != nil {
		if mode != ModeCanvas {
			if fbErr := d.acquire(ModeCanvas); fbErr != nil {
				return fmt.Errorf("backend %s failed (%v); canvas fallback failed: %w", mode, err, fbErr)
			}
		} else {
			return err
		}
	}
	if d.history != nil {
		return d.SeekTo(d.pos)
	}
	return nil
}

// ScheduleFrame arms a single outstanding frame callback, cancelling
// any previous one first. There is never more than one pending request.
func (d *Driver) ScheduleFrame(delay time.Duration, fn func(now time.Time)) {
	d.sched.schedule(delay, fn)
}

// CancelFrame releases the outstanding frame request, if any.
func (d *Driver) CancelFrame() { d.sched.cancel() }

// Dispose releases the scheduler and the active backend.
func (d *Driver) Dispose() {
	d.sched.cancel()
	if d.backend != nil {
		d.backend.Dispose()
		d.backend = nil
	}
}

// frameScheduler owns at most one outstanding frame timer. Scheduling
// always cancels the previous request first, so two concurrent render
// loops cannot exist.
type frameScheduler struct {
	timer *time.Timer
}

func (f *frameScheduler) schedule(d time.Duration, fn func(now time.Time)) {
	f.cancel()
	f.timer = time.AfterFunc(d, func() { fn(time.Now()) })
}

func (f *frameScheduler) cancel() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
