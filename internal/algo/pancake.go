package algo

import "github.com/san-kum/sortviz/internal/step"

// Pancake sorts by prefix reversals. Each flip is a marker step followed
// by the symmetric swaps that realize it, so replay needs no special
// flip handling.
type Pancake struct{}

func NewPancake() *Pancake { return &Pancake{} }

func (p *Pancake) Name() string { return "pancake" }

func (p *Pancake) Info() Info {
	return Info{
		Name:     "pancake",
		Category: "exchange",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n^2)", Average: "O(n^2)", Worst: "O(n^2)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (p *Pancake) Sort(o *Ops) error {
	for end := o.Len(); end > 1; end-- {
		max := 0
		for i := 1; i < end; i++ {
			if o.Less(max, i) {
				max = i
			}
		}
		if max == end-1 {
			continue
		}
		if max > 0 {
			p.flip(o, max)
		}
		p.flip(o, end-1)
	}
	return nil
}

func (p *Pancake) flip(o *Ops, k int) {
	o.Mark(step.KindFlip, []int{0, k}, map[string]any{"depth": k + 1})
	for i, j := 0, k; i < j; i, j = i+1, j-1 {
		o.Swap(i, j)
	}
}
