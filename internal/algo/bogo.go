package algo

import "github.com/san-kum/sortviz/internal/step"

// Bogo shuffles until sorted, bounded by Options.MaxIterations. Hitting
// the bound is not an error: the run ends with a max-iterations marker
// instead of a final step, so callers can tell "sorted" from "gave up".
type Bogo struct{}

func NewBogo() *Bogo { return &Bogo{} }

func (b *Bogo) Name() string { return "bogo" }

func (b *Bogo) Info() Info {
	return Info{
		Name:     "bogo",
		Category: "random",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n)", Average: "O(n*n!)", Worst: "unbounded"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (b *Bogo) Sort(o *Ops) error {
	for iter := 0; ; iter++ {
		if b.sorted(o) {
			return nil
		}
		if iter >= o.MaxIterations() {
			o.GiveUp(iter)
			return nil
		}
		b.shuffle(o)
	}
}

func (b *Bogo) sorted(o *Ops) bool {
	for i := 1; i < o.Len(); i++ {
		if o.Less(i, i-1) {
			return false
		}
	}
	return true
}

func (b *Bogo) shuffle(o *Ops) {
	o.Mark(step.KindShuffle, nil, nil)
	for i := o.Len() - 1; i > 0; i-- {
		j := o.Rng().Intn(i + 1)
		if j != i {
			o.Swap(i, j)
		}
	}
}
