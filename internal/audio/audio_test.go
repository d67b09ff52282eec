package audio

import (
	"math"
	"testing"

	"github.com/san-kum/sortviz/internal/step"
)

func TestFreqForSpansRange(t *testing.T) {
	s := NewSonifier()
	s.SetRange(100)

	if got := s.freqFor(0); got != minFreq {
		t.Errorf("freq at 0 = %g, want %g", got, minFreq)
	}
	if got := s.freqFor(100); math.Abs(got-maxFreq) > 1e-9 {
		t.Errorf("freq at max = %g, want %g", got, maxFreq)
	}
	// out of range values clamp instead of extrapolating
	if got := s.freqFor(500); math.Abs(got-maxFreq) > 1e-9 {
		t.Errorf("freq beyond max = %g, want %g", got, maxFreq)
	}
	if got := s.freqFor(-1); got != minFreq {
		t.Errorf("freq below 0 = %g, want %g", got, minFreq)
	}

	lo := s.freqFor(25)
	hi := s.freqFor(75)
	if lo >= hi {
		t.Error("pitch should rise with value")
	}
}

func TestOnStepInactiveIsNoop(t *testing.T) {
	s := NewSonifier()
	s.OnStep(step.Step{Kind: step.KindWrite, Values: []float64{5}}, step.Metrics{})
	for _, v := range s.voices {
		if v.env != 0 {
			t.Fatal("inactive sonifier should not allocate voices")
		}
	}
}

func TestOnStepAllocatesAndStealsVoices(t *testing.T) {
	s := NewSonifier()
	s.active = true
	s.SetRange(10)

	s.OnStep(step.Step{Kind: step.KindWrite, Values: []float64{5}}, step.Metrics{})
	if s.voices[0].env != 1 {
		t.Fatal("write should trigger a voice")
	}
	writeGain := s.voices[0].gain

	s.OnStep(step.Step{Kind: step.KindCompare, Values: []float64{1, 2}}, step.Metrics{})
	if s.voices[1].env != 1 || s.voices[2].env != 1 {
		t.Fatal("compare should trigger one voice per value")
	}
	if s.voices[1].gain >= writeGain {
		t.Error("reads should be quieter than writes")
	}

	// markers carry no tone
	s.OnStep(step.Step{Kind: step.KindPivot, Values: []float64{3}}, step.Metrics{})
	if s.voices[3].env != 0 {
		t.Error("marker steps should stay silent")
	}

	// fill past the pool; oldest voice is stolen, index wraps
	for i := 0; i < maxVoices; i++ {
		s.OnStep(step.Step{Kind: step.KindRead, Values: []float64{float64(i)}}, step.Metrics{})
	}
	if s.next >= maxVoices {
		t.Error("voice index should wrap")
	}
}

func TestProcessAudioDecaysToSilence(t *testing.T) {
	s := NewSonifier()
	s.active = true
	s.SetRange(10)
	s.OnStep(step.Step{Kind: step.KindWrite, Values: []float64{5}}, step.Metrics{})

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}

	nonSilent := false
	// at decay 10 the envelope dies within 0.1s of audio
	for i := 0; i < SampleRate/BufferSize/5; i++ {
		s.processAudio(out)
		for _, v := range out[0] {
			if v != 0 {
				nonSilent = true
			}
			if v > 1 || v < -1 {
				t.Fatalf("sample %g outside [-1, 1]", v)
			}
		}
	}
	if !nonSilent {
		t.Error("triggered voice produced no sound")
	}

	if s.voices[0].env > 0 {
		t.Error("envelope should have decayed to zero")
	}
}
