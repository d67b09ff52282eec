package algo

type Bubble struct{}

func NewBubble() *Bubble { return &Bubble{} }
func (b *Bubble) Name() string { return "bubble" }

func (b *Bubble) Info() Info {
	return Info{
		Name:     "bubble",
		Category: "exchange",
		Stable:   true,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n)", Average: "O(n^2)", Worst: "O(n^2)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (b *Bubble) Sort(o *Ops) error {
	n := o.Len()
	for end := n; end > 1; end-- {
		swapped := false
		for i := 1; i < end; i++ {
			if o.Less(i, i-1) {
				o.Swap(i-1, i)
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return nil
}

// Cocktail is the bidirectional bubble variant: alternating forward and
// backward passes shrink both ends of the unsorted window.
type Cocktail struct{}

func NewCocktail() *Cocktail { return &Cocktail{} }
func (c *Cocktail) Name() string { return "cocktail" }

func (c *Cocktail) Info() Info {
	info := NewBubble().Info()
	info.Name = "cocktail"
	return info
}

func (c *Cocktail) Sort(o *Ops) error {
	lo, hi := 0, o.Len()-1
	for lo < hi {
		swapped := false
		for i := lo; i < hi; i++ {
			if o.Less(i+1, i) {
				o.Swap(i, i+1)
				swapped = true
			}
		}
		hi--
		for i := hi; i > lo; i-- {
			if o.Less(i, i-1) {
				o.Swap(i-1, i)
				swapped = true
			}
		}
		lo++
		if !swapped {
			break
		}
	}
	return nil
}
