package algo

type Selection struct{}

func NewSelection() *Selection { return &Selection{} }

func (s *Selection) Name() string { return "selection" }

func (s *Selection) Info() Info {
	return Info{
		Name:     "selection",
		Category: "selection",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n^2)", Average: "O(n^2)", Worst: "O(n^2)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (s *Selection) Sort(o *Ops) error {
	n := o.Len()
	for i := 0; i < n-1; i++ {
		min := i
		for j := i + 1; j < n; j++ {
			if o.Less(j, min) {
				min = j
			}
		}
		if min != i {
			o.Swap(i, min)
		}
	}
	return nil
}
