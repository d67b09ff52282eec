package algo

import "github.com/san-kum/sortviz/internal/step"

// PivotPolicy selects the partition pivot.
type PivotPolicy string

const (
	PivotFirst   PivotPolicy = "first"
	PivotLast    PivotPolicy = "last"
	PivotMiddle  PivotPolicy = "middle"
	PivotRandom  PivotPolicy = "random"
	PivotMedian3 PivotPolicy = "median3"
)

// Quick is an iterative-on-the-larger-side quicksort. Partitions below
// the configured cutoff are finished with a plain insertion pass, so the
// recursion depth stays logarithmic in expectation.
type Quick struct{}

func NewQuick() *Quick { return &Quick{} }

func (q *Quick) Name() string { return "quick" }

func (q *Quick) Info() Info {
	return Info{
		Name:     "quick",
		Category: "partition",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n^2)"},
			Space: Bounds{Best: "O(log n)", Average: "O(log n)", Worst: "O(log n)"},
		},
	}
}

func (q *Quick) Sort(o *Ops) error {
	if o.Len() > 1 {
		q.sort(o, 0, o.Len()-1)
	}
	return nil
}

func (q *Quick) sort(o *Ops, lo, hi int) {
	for hi-lo+1 > o.Cutoff() {
		p := q.partition(o, lo, hi)
		// recurse into the smaller half, loop on the larger
		if p-lo < hi-p {
			if p-1 > lo {
				q.sort(o, lo, p-1)
			}
			lo = p + 1
		} else {
			if p+1 < hi {
				q.sort(o, p+1, hi)
			}
			hi = p - 1
		}
	}
	insertionRange(o, lo, hi+1)
}

func (q *Quick) partition(o *Ops, lo, hi int) int {
	p := pivotIndex(o, lo, hi)
	if p != hi {
		o.Swap(p, hi)
	}
	o.Mark(step.KindPivot, []int{hi}, map[string]any{"lo": lo, "hi": hi})

	i := lo
	for j := lo; j < hi; j++ {
		if o.Less(j, hi) {
			if i != j {
				o.Swap(i, j)
			}
			i++
		}
	}
	if i != hi {
		o.Swap(i, hi)
	}
	return i
}

func pivotIndex(o *Ops, lo, hi int) int {
	switch o.Pivot() {
	case PivotFirst:
		return lo
	case PivotLast:
		return hi
	case PivotMiddle:
		return lo + (hi-lo)/2
	case PivotRandom:
		return lo + o.Rng().Intn(hi-lo+1)
	default: // median3
		mid := lo + (hi-lo)/2
		return median3(o, lo, mid, hi)
	}
}

// median3 returns the index holding the median of the three elements.
func median3(o *Ops, a, b, c int) int {
	ab := o.Compare(a, b) < 0
	bc := o.Compare(b, c) < 0
	if ab == bc {
		return b
	}
	if ab != (o.Compare(a, c) < 0) {
		return a
	}
	return c
}
