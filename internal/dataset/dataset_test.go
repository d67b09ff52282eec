package dataset

import (
	"reflect"
	"testing"
)

func TestGenerateDeterministicForSeed(t *testing.T) {
	for _, kind := range Kinds() {
		a, err := Generate(kind, 100, 42)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		b, err := Generate(kind, 100, 42)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: same seed produced different data", kind)
		}
	}
}

func TestGenerateBoundsAndSizes(t *testing.T) {
	for _, kind := range Kinds() {
		for _, size := range []int{0, 1, 2, 33, 256} {
			out, err := Generate(kind, size, 7)
			if err != nil {
				t.Fatalf("%s size %d: %v", kind, size, err)
			}
			if len(out) != size {
				t.Errorf("%s: got %d values, want %d", kind, len(out), size)
			}
			for i, v := range out {
				if v < 1 || v > 100 {
					t.Errorf("%s[%d] = %f out of (0, 100]", kind, i, v)
				}
			}
		}
	}
}

func TestGenerateSortedIsSorted(t *testing.T) {
	out, err := Generate(KindSorted, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !IsSorted(out) {
		t.Errorf("sorted kind not sorted: %v", out)
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate("nope", 10, 0); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Generate(KindRandom, -1, 0); err == nil {
		t.Error("expected error for negative size")
	}
}
