package palette

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		if v := Ease(name, 0); math.Abs(v) > 1e-12 {
			t.Errorf("%s: ease(0) = %f, want 0", name, v)
		}
		if v := Ease(name, 1); math.Abs(v-1) > 1e-12 {
			t.Errorf("%s: ease(1) = %f, want 1", name, v)
		}
	}
}

func TestEasingClampsDomain(t *testing.T) {
	for _, name := range EasingNames() {
		if v := Ease(name, -0.5); v != Ease(name, 0) {
			t.Errorf("%s: t<0 not clamped", name)
		}
		if v := Ease(name, 1.5); v != Ease(name, 1) {
			t.Errorf("%s: t>1 not clamped", name)
		}
	}
}

func TestEasingUnknownFallsBackToLinear(t *testing.T) {
	if v := Ease("no-such-easing", 0.3); v != 0.3 {
		t.Errorf("unknown easing got %f, want linear 0.3", v)
	}
}

func TestColorForValueTotalOnDomain(t *testing.T) {
	for _, s := range Schemes() {
		for _, v := range []float64{-1, 0, 0.001, 0.25, 0.5, 0.75, 0.999, 1, 2} {
			c := ColorForValue(s, v, 0, 10)
			for _, comp := range []float64{c.R, c.G, c.B, c.A} {
				if comp < 0 || comp > 1 || math.IsNaN(comp) {
					t.Errorf("%s at %f: component %f out of range", s, v, comp)
				}
			}
		}
	}
}

func TestHighlightPrecedence(t *testing.T) {
	base := ColorFor(SchemeRainbow, ClassNormal, 0.5, 0, 10)
	if base != ColorForValue(SchemeRainbow, 0.5, 0, 10) {
		t.Error("normal class must use scheme color")
	}
	for _, class := range []Class{ClassComparing, ClassReading, ClassWriting, ClassSorted, ClassPivot} {
		c := ColorFor(SchemeRainbow, class, 0.5, 0, 10)
		if c == base {
			t.Errorf("class %d did not override base color", class)
		}
	}
}

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("nope"); got.Name != ThemeCyberpunk.Name {
		t.Errorf("unknown theme resolved to %s", got.Name)
	}
	for _, name := range ThemeNames() {
		if GetTheme(name).Name != name {
			t.Errorf("theme %s not found by name", name)
		}
	}
}
