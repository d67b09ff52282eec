package step

import (
	"math/rand"
	"testing"
)

func TestApplySwapAndWrite(t *testing.T) {
	arr := []float64{1, 2, 3}

	Apply(arr, Step{Kind: KindSwap, Indices: []int{0, 2}})
	if arr[0] != 3 || arr[2] != 1 {
		t.Errorf("swap not applied: %v", arr)
	}

	Apply(arr, Step{Kind: KindWrite, Indices: []int{1}, Values: []float64{9}})
	if arr[1] != 9 {
		t.Errorf("write not applied: %v", arr)
	}

	before := append([]float64(nil), arr...)
	Apply(arr, Step{Kind: KindCompare, Indices: []int{0, 1}})
	for i := range arr {
		if arr[i] != before[i] {
			t.Errorf("compare mutated array at %d", i)
		}
	}
}

func TestHistoryReplayReproducesFinal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	initial := make([]float64, 50)
	for i := range initial {
		initial[i] = rng.Float64()
	}

	h := NewHistory(initial, 16)
	work := h.Initial()
	for n := 0; n < 500; n++ {
		i, j := rng.Intn(len(work)), rng.Intn(len(work))
		s := Step{Kind: KindSwap, Indices: []int{i, j}}
		work[i], work[j] = work[j], work[i]
		if h.CheckpointDue() {
			// a snapshot records the state after its step is applied
			s.Snapshot = append([]float64(nil), work...)
		}
		h.Append(s)
	}

	final := h.Final()
	for i := range work {
		if final[i] != work[i] {
			t.Fatalf("replay diverged at %d: got %f want %f", i, final[i], work[i])
		}
	}
}

func TestHistorySeek(t *testing.T) {
	initial := []float64{3, 1, 2}
	h := NewHistory(initial, 2)
	h.Append(Step{Kind: KindSwap, Indices: []int{0, 1}, Snapshot: []float64{1, 3, 2}})
	h.Append(Step{Kind: KindSwap, Indices: []int{1, 2}})

	at, err := h.At(-1)
	if err != nil {
		t.Fatalf("seek -1: %v", err)
	}
	if at[0] != 3 {
		t.Errorf("initial state wrong: %v", at)
	}

	at, err = h.At(0)
	if err != nil {
		t.Fatalf("seek 0: %v", err)
	}
	if at[0] != 1 || at[1] != 3 {
		t.Errorf("after first swap: %v", at)
	}

	at, err = h.At(1)
	if err != nil {
		t.Fatalf("seek 1: %v", err)
	}
	if at[1] != 2 || at[2] != 3 {
		t.Errorf("after second swap: %v", at)
	}

	if _, err := h.At(5); err == nil {
		t.Error("expected error for out-of-range position")
	}
}

func TestMetricsCountSwap(t *testing.T) {
	var m Metrics
	m.Count(KindSwap)
	if m.Swaps != 1 || m.Reads != 2 || m.Writes != 2 {
		t.Errorf("swap counting wrong: %+v", m)
	}
	if m.Swaps*2 > m.Reads+m.Writes {
		t.Error("swap invariant violated")
	}
}
