package algo

import (
	"context"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/san-kum/sortviz/internal/step"
)

func testInputs() map[string][]float64 {
	rng := rand.New(rand.NewSource(42))
	random := make([]float64, 64)
	for i := range random {
		random[i] = float64(rng.Intn(100))
	}
	reversed := make([]float64, 32)
	for i := range reversed {
		reversed[i] = float64(len(reversed) - i)
	}
	return map[string][]float64{
		"empty":      {},
		"single":     {1},
		"pair":       {2, 1},
		"duplicates": {3, 1, 3, 1, 2, 2, 3},
		"sorted":     {1, 2, 3, 4, 5, 6, 7, 8},
		"reversed":   reversed,
		"random":     random,
	}
}

func isSorted(arr []float64) bool {
	return sort.Float64sAreSorted(arr)
}

func isPermutation(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	ac := append([]float64(nil), a...)
	bc := append([]float64(nil), b...)
	sort.Float64s(ac)
	sort.Float64s(bc)
	return reflect.DeepEqual(ac, bc)
}

func TestAllAlgorithmsSortAllInputs(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.List() {
		if name == "bogo" {
			continue // covered separately with small inputs
		}
		for inputName, input := range testInputs() {
			sorter, err := reg.Get(name)
			if err != nil {
				t.Fatalf("get %s: %v", name, err)
			}
			eng := New(sorter)
			out, err := eng.Execute(context.Background(), input, Options{})
			if err != nil {
				t.Fatalf("%s on %s: %v", name, inputName, err)
			}
			if !isSorted(out) {
				t.Errorf("%s on %s: output not sorted: %v", name, inputName, out)
			}
			if !isPermutation(input, out) {
				t.Errorf("%s on %s: output not a permutation", name, inputName)
			}
		}
	}
}

func TestInputNeverMutated(t *testing.T) {
	input := []float64{5, 3, 8, 1, 9, 2}
	orig := append([]float64(nil), input...)
	eng := New(NewQuick())
	if _, err := eng.Execute(context.Background(), input, Options{}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(input, orig) {
		t.Errorf("input mutated: %v", input)
	}
}

func TestReplayReproducesOutput(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.List() {
		if name == "bogo" {
			continue
		}
		input := testInputs()["random"]
		sorter, _ := reg.Get(name)
		eng := New(sorter)
		out, err := eng.Execute(context.Background(), input, Options{CheckpointInterval: 50})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		replayed := eng.History().Final()
		if !reflect.DeepEqual(out, replayed) {
			t.Errorf("%s: replay diverged from output", name)
		}
	}
}

func TestMetricsMatchRecordedHistory(t *testing.T) {
	reg := NewRegistry()
	input := testInputs()["random"]
	for _, name := range reg.List() {
		if name == "bogo" {
			continue
		}
		sorter, _ := reg.Get(name)
		eng := New(sorter)
		if _, err := eng.Execute(context.Background(), input, Options{}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		live := eng.Metrics()
		recounted := eng.History().Recount()
		if live.Comparisons != recounted.Comparisons ||
			live.Swaps != recounted.Swaps ||
			live.Reads != recounted.Reads ||
			live.Writes != recounted.Writes {
			t.Errorf("%s: live metrics %+v != recounted %+v", name, live, recounted)
		}
		if live.Swaps*2 > live.Reads+live.Writes {
			t.Errorf("%s: swap invariant violated: %+v", name, live)
		}
	}
}

func TestResetIdempotence(t *testing.T) {
	input := testInputs()["random"]

	fresh := New(NewHeap())
	if _, err := fresh.Execute(context.Background(), input, Options{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	want := fresh.Metrics()

	reused := New(NewHeap())
	if _, err := reused.Execute(context.Background(), input, Options{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	reused.Reset()
	if reused.History() != nil {
		t.Error("history not cleared by reset")
	}
	if _, err := reused.Execute(context.Background(), input, Options{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	got := reused.Metrics()

	if got.Comparisons != want.Comparisons || got.Swaps != want.Swaps ||
		got.Reads != want.Reads || got.Writes != want.Writes {
		t.Errorf("metrics after reset %+v != fresh %+v", got, want)
	}
}

func TestNilInput(t *testing.T) {
	eng := New(NewBubble())
	if _, err := eng.Execute(context.Background(), nil, Options{}); err != ErrNilInput {
		t.Errorf("expected ErrNilInput, got %v", err)
	}
}

func TestComparatorPanicSurfacesWithPartialHistory(t *testing.T) {
	eng := New(NewBubble())
	calls := 0
	boom := func(a, b float64) int {
		calls++
		if calls > 3 {
			panic("bad comparator")
		}
		return NumericAscending(a, b)
	}
	_, err := eng.Execute(context.Background(), []float64{4, 3, 2, 1}, Options{Comparator: boom})
	if err == nil {
		t.Fatal("expected error from panicking comparator")
	}
	if eng.History() == nil || eng.History().Len() == 0 {
		t.Error("partial history should remain inspectable")
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := New(NewBubble())
	_, err := eng.Execute(ctx, []float64{3, 2, 1}, Options{})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCustomComparatorDescending(t *testing.T) {
	desc := func(a, b float64) int { return NumericAscending(b, a) }
	eng := New(NewMerge())
	out, err := eng.Execute(context.Background(), []float64{1, 5, 3, 2}, Options{Comparator: desc})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{5, 3, 2, 1}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("descending sort got %v want %v", out, want)
	}
}

func TestObserverOrderAndEvents(t *testing.T) {
	eng := New(NewBubble())
	var kinds []step.Kind
	eng.On(EventStep, func(s step.Step) { kinds = append(kinds, s.Kind) })
	compares := 0
	eng.On(EventCompare, func(s step.Step) { compares++ })
	swaps := 0
	eng.On(EventSwap, func(s step.Step) { swaps++ })

	if _, err := eng.Execute(context.Background(), []float64{2, 1}, Options{}); err != nil {
		t.Fatal(err)
	}

	if len(kinds) != eng.History().Len() {
		t.Errorf("step events %d != history %d", len(kinds), eng.History().Len())
	}
	if kinds[0] != step.KindInitial || kinds[len(kinds)-1] != step.KindFinal {
		t.Errorf("unexpected boundary kinds: %v", kinds)
	}
	if uint64(compares) != eng.Metrics().Comparisons {
		t.Errorf("compare events %d != metric %d", compares, eng.Metrics().Comparisons)
	}
	if uint64(swaps) != eng.Metrics().Swaps {
		t.Errorf("swap events %d != metric %d", swaps, eng.Metrics().Swaps)
	}
}
