package step

import "time"

// Metrics holds cumulative operation counters for one run. Counters only
// grow; an engine reset replaces the whole value.
type Metrics struct {
	Comparisons uint64
	Swaps       uint64
	Reads       uint64
	Writes      uint64
	Elapsed     time.Duration
}

// Accesses is the total number of element touches.
func (m Metrics) Accesses() uint64 {
	return m.Reads + m.Writes
}

// Count folds one step kind into the counters. A swap is recorded as two
// reads plus two writes on top of the swap counter, which keeps the
// swaps*2 <= reads+writes invariant trivially true.
func (m *Metrics) Count(k Kind) {
	switch k {
	case KindCompare:
		m.Comparisons++
	case KindRead:
		m.Reads++
	case KindWrite:
		m.Writes++
	case KindSwap:
		m.Swaps++
		m.Reads += 2
		m.Writes += 2
	}
}
