package palette

import (
	"math"
	"sort"
)

// EaseFunc maps animation progress t in [0,1] to an interpolation
// factor. Every registered easing satisfies f(0)=0 and f(1)=1.
type EaseFunc func(t float64) float64

const DefaultEasing = "quad-in-out"

var easings = map[string]EaseFunc{
	"linear":       func(t float64) float64 { return t },
	"quad-in":      func(t float64) float64 { return t * t },
	"quad-out":     func(t float64) float64 { return t * (2 - t) },
	"quad-in-out":  quadInOut,
	"cubic-in-out": cubicInOut,
	"sine-in-out":  func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },
	"elastic-out":  elasticOut,
}

func quadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

func cubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 1 - t
	return 1 - 4*u*u*u
}

func elasticOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const c4 = 2 * math.Pi / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// Ease applies the named easing with t clamped to [0,1]. Unknown names
// fall back to linear so a stale config can never break a frame.
func Ease(name string, t float64) float64 {
	t = clamp01(t)
	fn, ok := easings[name]
	if !ok {
		return t
	}
	return fn(t)
}

// EasingNames lists registered easings in stable order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
