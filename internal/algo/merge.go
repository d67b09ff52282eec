package algo

import "github.com/san-kum/sortviz/internal/step"

// Merge is a top-down merge sort. Each merge emits a marker whose Meta
// carries the lo/mid/hi extents, so a consumer can render sub-array
// boundaries without re-deriving the recursion.
type Merge struct{}

func NewMerge() *Merge { return &Merge{} }

func (m *Merge) Name() string { return "merge" }

func (m *Merge) Info() Info {
	return Info{
		Name:     "merge",
		Category: "merge",
		Stable:   true,
		InPlace:  false,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
			Space: Bounds{Best: "O(n)", Average: "O(n)", Worst: "O(n)"},
		},
	}
}

func (m *Merge) Sort(o *Ops) error {
	if o.Len() > 1 {
		m.sort(o, 0, o.Len())
	}
	return nil
}

func (m *Merge) sort(o *Ops, lo, hi int) {
	if hi-lo < 2 {
		return
	}
	mid := lo + (hi-lo)/2
	m.sort(o, lo, mid)
	m.sort(o, mid, hi)
	m.merge(o, lo, mid, hi)
}

func (m *Merge) merge(o *Ops, lo, mid, hi int) {
	o.Mark(step.KindMerge, []int{lo, hi - 1}, map[string]any{"lo": lo, "mid": mid, "hi": hi})

	left := make([]float64, mid-lo)
	for i := range left {
		left[i] = o.Read(lo + i)
	}
	right := make([]float64, hi-mid)
	for i := range right {
		right[i] = o.Read(mid + i)
	}

	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		// ties take from the left run, which keeps the sort stable
		if o.CompareValues(right[j], left[i]) < 0 {
			o.Write(k, right[j])
			j++
		} else {
			o.Write(k, left[i])
			i++
		}
		k++
	}
	for ; i < len(left); i++ {
		o.Write(k, left[i])
		k++
	}
	for ; j < len(right); j++ {
		o.Write(k, right[j])
		k++
	}
}
