// Package dataset builds input arrays for visualization runs. Every
// generator is pure and deterministic for a given seed.
package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

type Kind string

const (
	KindRandom       Kind = "random"
	KindSorted       Kind = "sorted"
	KindReversed     Kind = "reversed"
	KindNearlySorted Kind = "nearly-sorted"
	KindFewUnique    Kind = "few-unique"
	KindSawtooth     Kind = "sawtooth"
	KindGaussian     Kind = "gaussian"
	KindOrganPipe    Kind = "organ-pipe"
)

// Kinds lists every generator name in stable order.
func Kinds() []Kind {
	return []Kind{
		KindRandom, KindSorted, KindReversed, KindNearlySorted,
		KindFewUnique, KindSawtooth, KindGaussian, KindOrganPipe,
	}
}

// Generate builds size values in (0, 100]. Unknown kinds and negative
// sizes are errors; size 0 yields an empty array.
func Generate(kind Kind, size int, seed int64) ([]float64, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, size)

	switch kind {
	case KindRandom:
		for i := range out {
			out[i] = 1 + rng.Float64()*99
		}
	case KindSorted:
		for i := range out {
			out[i] = ramp(i, size)
		}
	case KindReversed:
		for i := range out {
			out[i] = ramp(size-1-i, size)
		}
	case KindNearlySorted:
		for i := range out {
			out[i] = ramp(i, size)
		}
		// a few random transpositions spoil roughly 10% of positions
		for k := 0; k < size/10; k++ {
			i, j := rng.Intn(size), rng.Intn(size)
			out[i], out[j] = out[j], out[i]
		}
	case KindFewUnique:
		levels := []float64{20, 40, 60, 80, 100}
		for i := range out {
			out[i] = levels[rng.Intn(len(levels))]
		}
	case KindSawtooth:
		period := size / 4
		if period < 2 {
			period = 2
		}
		for i := range out {
			out[i] = ramp(i%period, period)
		}
	case KindGaussian:
		for i := range out {
			v := 50 + rng.NormFloat64()*18
			out[i] = math.Min(100, math.Max(1, v))
		}
	case KindOrganPipe:
		for i := range out {
			if i < size/2 {
				out[i] = ramp(i, size/2)
			} else {
				out[i] = ramp(size-1-i, size-size/2)
			}
		}
	default:
		return nil, fmt.Errorf("unknown dataset kind: %s", kind)
	}
	return out, nil
}

func ramp(i, n int) float64 {
	if n <= 1 {
		return 100
	}
	return 1 + 99*float64(i)/float64(n-1)
}

// IsSorted is a convenience check shared by callers.
func IsSorted(arr []float64) bool {
	return sort.Float64sAreSorted(arr)
}
