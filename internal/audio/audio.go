// Package audio sonifies a run: every read and write triggers a short
// tone whose pitch tracks the element's value, so the sound of a sort
// is the shape of its access pattern.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/sortviz/internal/step"
)

const (
	SampleRate = 44100
	BufferSize = 512

	minFreq = 120.0
	maxFreq = 1200.0

	// fixed voice pool; a burst of steps steals the oldest voice
	maxVoices = 12
)

// voice is one decaying oscillator.
type voice struct {
	freq  float64
	phase float64
	env   float64
	decay float64
	gain  float64
}

// Sonifier renders step events as audio. It implements the engine's
// observer contract, so wiring it is one AddObserver call.
type Sonifier struct {
	stream *portaudio.Stream

	mu       sync.Mutex
	voices   [maxVoices]voice
	next     int
	maxValue float64

	filterState [2]float64
	active      bool
}

func NewSonifier() *Sonifier {
	return &Sonifier{maxValue: 1}
}

func (a *Sonifier) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.processAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	a.stream = stream
	a.active = true
	return nil
}

func (a *Sonifier) Stop() {
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
		a.stream = nil
	}
	portaudio.Terminate()
	a.active = false
}

func (a *Sonifier) Active() bool { return a.active }

// SetRange fixes the value that maps to the top of the pitch range.
func (a *Sonifier) SetRange(maxValue float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if maxValue > 0 {
		a.maxValue = maxValue
	}
}

// OnStep triggers voices for the touched values. Writes and swaps play
// louder than reads and comparisons.
func (a *Sonifier) OnStep(s step.Step, m step.Metrics) {
	if !a.active || len(s.Values) == 0 {
		return
	}

	gain := 0.12
	decay := 18.0
	switch s.Kind {
	case step.KindWrite, step.KindSwap:
		gain = 0.2
		decay = 10.0
	case step.KindCompare, step.KindRead:
	default:
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range s.Values {
		a.voices[a.next] = voice{
			freq:  a.freqFor(v),
			env:   1,
			decay: decay,
			gain:  gain,
		}
		a.next = (a.next + 1) % maxVoices
	}
}

// freqFor maps a value onto an exponential pitch curve. Callers hold mu.
func (a *Sonifier) freqFor(v float64) float64 {
	t := v / a.maxValue
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return minFreq * math.Pow(maxFreq/minFreq, t)
}

// triangle is smooth and flute-like, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Sonifier) processAudio(out [][]float32) {
	dt := 1.0 / float64(SampleRate)
	envStep := -1.0 / float64(SampleRate)

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		for j := range a.voices {
			v := &a.voices[j]
			if v.env <= 0 {
				continue
			}
			// slight detune widens the stereo image
			oscL := triangle(v.phase * 0.999)
			oscR := triangle(v.phase * 1.001)
			sampleL += oscL * v.env * v.gain
			sampleR += oscR * v.env * v.gain

			v.phase += v.freq * dt
			v.env += envStep * v.decay
		}

		var outL, outR float64
		outL, a.filterState[0] = lpf(sampleL, 2400, dt, a.filterState[0])
		outR, a.filterState[1] = lpf(sampleR, 2400, dt, a.filterState[1])

		out[0][i] = float32(clip(outL))
		out[1][i] = float32(clip(outR))
	}
}

func clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
