package algo

type Insertion struct{}

func NewInsertion() *Insertion { return &Insertion{} }

func (s *Insertion) Name() string { return "insertion" }

func (s *Insertion) Info() Info {
	return Info{
		Name:     "insertion",
		Category: "insertion",
		Stable:   true,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n)", Average: "O(n^2)", Worst: "O(n^2)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (s *Insertion) Sort(o *Ops) error {
	insertionRange(o, 0, o.Len())
	return nil
}

// insertionRange sorts [lo, hi) by adjacent swaps. Shared with the
// quicksort small-partition cutoff, which records these as ordinary
// compare/swap steps rather than a distinct kind.
func insertionRange(o *Ops, lo, hi int) {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo && o.Less(j, j-1); j-- {
			o.Swap(j-1, j)
		}
	}
}

// Shell runs gapped insertion passes with the Knuth gap sequence.
type Shell struct{}

func NewShell() *Shell { return &Shell{} }

func (s *Shell) Name() string { return "shell" }

func (s *Shell) Info() Info {
	return Info{
		Name:     "shell",
		Category: "insertion",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n log n)", Average: "O(n^1.3)", Worst: "O(n^1.5)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (s *Shell) Sort(o *Ops) error {
	n := o.Len()
	gap := 1
	for gap < n/3 {
		gap = gap*3 + 1
	}
	for ; gap >= 1; gap /= 3 {
		for i := gap; i < n; i++ {
			for j := i; j >= gap && o.Less(j, j-gap); j -= gap {
				o.Swap(j-gap, j)
			}
		}
	}
	return nil
}
