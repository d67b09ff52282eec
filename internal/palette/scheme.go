// Package palette holds the pure color and easing policy shared by all
// render backends. Nothing in here owns state; every function is safe
// to call per element per frame.
package palette

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

type Scheme string

const (
	SchemeRainbow Scheme = "rainbow"
	SchemeViridis Scheme = "viridis"
	SchemeOcean   Scheme = "ocean"
	SchemeMono    Scheme = "mono"
	SchemeHeat    Scheme = "heat"
)

func Schemes() []Scheme {
	return []Scheme{SchemeRainbow, SchemeViridis, SchemeOcean, SchemeMono, SchemeHeat}
}

// Class is the highlight state of one element. Highlight classes always
// take precedence over the scheme-derived base color.
type Class int

const (
	ClassNormal Class = iota
	ClassComparing
	ClassReading
	ClassWriting
	ClassSorted
	ClassPivot
)

var highlightColors = map[Class]RGBA{
	ClassComparing: {R: 1.0, G: 0.85, B: 0.1, A: 1},
	ClassReading:   {R: 0.2, G: 0.75, B: 1.0, A: 1},
	ClassWriting:   {R: 1.0, G: 0.35, B: 0.35, A: 1},
	ClassSorted:    {R: 0.25, G: 0.9, B: 0.4, A: 1},
	ClassPivot:     {R: 0.95, G: 0.4, B: 0.95, A: 1},
}

// viridis-like anchors, dark purple to yellow
var viridisAnchors = []colorful.Color{
	{R: 0.267, G: 0.005, B: 0.329},
	{R: 0.283, G: 0.141, B: 0.458},
	{R: 0.254, G: 0.265, B: 0.530},
	{R: 0.164, G: 0.471, B: 0.558},
	{R: 0.128, G: 0.567, B: 0.551},
	{R: 0.267, G: 0.749, B: 0.441},
	{R: 0.741, G: 0.873, B: 0.150},
	{R: 0.993, G: 0.906, B: 0.144},
}

var heatAnchors = []colorful.Color{
	{R: 0.05, G: 0.05, B: 0.1},
	{R: 0.55, G: 0.1, B: 0.1},
	{R: 0.95, G: 0.45, B: 0.1},
	{R: 1.0, G: 0.95, B: 0.6},
}

var oceanAnchors = []colorful.Color{
	{R: 0.0, G: 0.1, B: 0.3},
	{R: 0.0, G: 0.35, B: 0.6},
	{R: 0.1, G: 0.65, B: 0.8},
	{R: 0.6, G: 0.95, B: 0.95},
}

// ColorForValue maps a normalized value to the scheme's base color.
// Total on [0,1]: out-of-range values are clamped, never rejected.
func ColorForValue(s Scheme, v float64, index, total int) RGBA {
	v = clamp01(v)
	switch s {
	case SchemeRainbow:
		c := colorful.Hsv(260*(1-v), 0.82, 0.95)
		return fromColorful(c)
	case SchemeViridis:
		return fromColorful(blendAnchors(viridisAnchors, v))
	case SchemeOcean:
		return fromColorful(blendAnchors(oceanAnchors, v))
	case SchemeHeat:
		return fromColorful(blendAnchors(heatAnchors, v))
	case SchemeMono:
		g := 0.25 + 0.7*v
		return RGBA{R: g, G: g, B: g, A: 1}
	default:
		return ColorForValue(SchemeRainbow, v, index, total)
	}
}

// ColorFor applies highlight precedence over the scheme base color.
func ColorFor(s Scheme, class Class, v float64, index, total int) RGBA {
	if hl, ok := highlightColors[class]; ok {
		return hl
	}
	return ColorForValue(s, v, index, total)
}

func blendAnchors(anchors []colorful.Color, v float64) colorful.Color {
	n := len(anchors)
	if n == 1 {
		return anchors[0]
	}
	pos := v * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return anchors[n-1]
	}
	return anchors[i].BlendLuv(anchors[i+1], pos-float64(i))
}

func fromColorful(c colorful.Color) RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: 1}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
