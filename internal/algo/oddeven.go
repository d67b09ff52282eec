package algo

// OddEven is Batcher's merge-exchange sorting network. The
// compare-exchange pattern depends only on the array length, never on
// element values, so two runs over same-length inputs record identical
// comparison index sequences. Valid for any n, not just powers of two.
type OddEven struct{}

func NewOddEven() *OddEven { return &OddEven{} }

func (s *OddEven) Name() string { return "odd-even" }

func (s *OddEven) Info() Info {
	return Info{
		Name:     "odd-even",
		Category: "network",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n log^2 n)", Average: "O(n log^2 n)", Worst: "O(n log^2 n)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (s *OddEven) Sort(o *Ops) error {
	n := o.Len()
	if n < 2 {
		return nil
	}
	t := 0
	for 1<<t < n {
		t++
	}
	for p := 1 << (t - 1); p > 0; p >>= 1 {
		q := 1 << (t - 1)
		r := 0
		d := p
		for d > 0 {
			for i := 0; i+d < n; i++ {
				if i&p == r && o.Less(i+d, i) {
					o.Swap(i, i+d)
				}
			}
			d = q - p
			q >>= 1
			r = p
		}
	}
	return nil
}
