package algo

// Bounds holds best/average/worst asymptotic bounds as display strings.
type Bounds struct {
	Best    string `json:"best"`
	Average string `json:"average"`
	Worst   string `json:"worst"`
}

type Complexity struct {
	Time  Bounds `json:"time"`
	Space Bounds `json:"space"`
}

// Info describes a sorting algorithm's static properties.
type Info struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Stable     bool       `json:"stable"`
	InPlace    bool       `json:"inPlace"`
	Complexity Complexity `json:"complexity"`
}

// Sorter is one sorting algorithm. Sort may only touch elements through
// the Ops facade.
type Sorter interface {
	Name() string
	Info() Info
	Sort(o *Ops) error
}
