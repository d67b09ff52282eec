package algo

import (
	"fmt"
	"sort"
)

// Registry maps algorithm names to factories.
type Registry struct {
	sorters map[string]func() Sorter
}

func NewRegistry() *Registry {
	r := &Registry{sorters: make(map[string]func() Sorter)}

	r.sorters["bubble"] = func() Sorter { return NewBubble() }
	r.sorters["cocktail"] = func() Sorter { return NewCocktail() }
	r.sorters["insertion"] = func() Sorter { return NewInsertion() }
	r.sorters["selection"] = func() Sorter { return NewSelection() }
	r.sorters["shell"] = func() Sorter { return NewShell() }
	r.sorters["quick"] = func() Sorter { return NewQuick() }
	r.sorters["merge"] = func() Sorter { return NewMerge() }
	r.sorters["heap"] = func() Sorter { return NewHeap() }
	r.sorters["odd-even"] = func() Sorter { return NewOddEven() }
	r.sorters["pancake"] = func() Sorter { return NewPancake() }
	r.sorters["bogo"] = func() Sorter { return NewBogo() }

	return r
}

func (r *Registry) Get(name string) (Sorter, error) {
	fn, ok := r.sorters[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sorters))
	for name := range r.sorters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
