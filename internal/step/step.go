package step

// Kind labels one recorded algorithmic event.
type Kind string

const (
	KindInitial       Kind = "initial"
	KindCompare       Kind = "compare"
	KindRead          Kind = "read"
	KindWrite         Kind = "write"
	KindSwap          Kind = "swap"
	KindHeapBuilt     Kind = "heap-built"
	KindExtractMax    Kind = "extract-max"
	KindMerge         Kind = "merge"
	KindPivot         Kind = "pivot"
	KindFlip          Kind = "flip"
	KindShuffle       Kind = "shuffle"
	KindFinal         Kind = "final"
	KindMaxIterations Kind = "max-iterations"
)

// Step is one immutable record of an algorithmic event. Only KindWrite
// and KindSwap move data; every other kind is an observation or a
// marker, so replaying a History is a fold over writes and swaps.
type Step struct {
	Kind     Kind
	Indices  []int
	Values   []float64
	Snapshot []float64
	Meta     map[string]any
}

// Mutates reports whether applying the step changes array contents.
func (s Step) Mutates() bool {
	return s.Kind == KindWrite || s.Kind == KindSwap
}

// Apply folds the step into arr. Non-mutating kinds are no-ops.
func Apply(arr []float64, s Step) {
	switch s.Kind {
	case KindWrite:
		if len(s.Indices) == 1 && len(s.Values) == 1 {
			arr[s.Indices[0]] = s.Values[0]
		}
	case KindSwap:
		if len(s.Indices) == 2 {
			i, j := s.Indices[0], s.Indices[1]
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
}

// Terminal reports whether the step ends a run.
func (s Step) Terminal() bool {
	return s.Kind == KindFinal || s.Kind == KindMaxIterations
}
