package algo

import "github.com/san-kum/sortviz/internal/step"

// Heap is an in-place max-heap sort. It emits one heap-built marker once
// the max-heap property holds over the whole array, then one extract-max
// marker per removal; extracted values are strictly non-increasing (and
// strictly decreasing for distinct inputs).
type Heap struct{}

func NewHeap() *Heap { return &Heap{} }

func (h *Heap) Name() string { return "heap" }

func (h *Heap) Info() Info {
	return Info{
		Name:     "heap",
		Category: "heap",
		Stable:   false,
		InPlace:  true,
		Complexity: Complexity{
			Time:  Bounds{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
			Space: Bounds{Best: "O(1)", Average: "O(1)", Worst: "O(1)"},
		},
	}
}

func (h *Heap) Sort(o *Ops) error {
	n := o.Len()
	if n < 2 {
		return nil
	}

	for i := n/2 - 1; i >= 0; i-- {
		h.siftDown(o, i, n)
	}
	o.Mark(step.KindHeapBuilt, nil, map[string]any{"size": n, "children": heapAdjacency(n)})

	for end := n - 1; end > 0; end-- {
		o.Mark(step.KindExtractMax, []int{0}, map[string]any{"dest": end})
		o.Swap(0, end)
		h.siftDown(o, 0, end)
	}
	return nil
}

func (h *Heap) siftDown(o *Ops, root, size int) {
	for {
		child := 2*root + 1
		if child >= size {
			return
		}
		if child+1 < size && o.Less(child, child+1) {
			child++
		}
		if !o.Less(root, child) {
			return
		}
		o.Swap(root, child)
		root = child
	}
}

// heapAdjacency lists child indices per node for renderers that want to
// draw the implicit tree.
func heapAdjacency(n int) [][]int {
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		if l := 2*i + 1; l < n {
			adj[i] = append(adj[i], l)
		}
		if r := 2*i + 2; r < n {
			adj[i] = append(adj[i], r)
		}
	}
	return adj
}
