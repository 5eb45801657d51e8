package vmath

import "math"

// Number is the set of numeric types a Range can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Range is a closed interval [Min, Max].
type Range[T Number] struct {
	Min, Max T
}

// NewRange creates a range, swapping the bounds if they are reversed.
func NewRange[T Number](a, b T) Range[T] {
	if b < a {
		a, b = b, a
	}
	return Range[T]{Min: a, Max: b}
}

// Contains reports whether v lies inside the range.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// Size returns Max - Min.
func (r Range[T]) Size() T {
	return r.Max - r.Min
}

// Intersect returns the overlap of two ranges and whether they overlap.
func (r Range[T]) Intersect(o Range[T]) (Range[T], bool) {
	out := Range[T]{Min: max(r.Min, o.Min), Max: min(r.Max, o.Max)}
	return out, out.Min <= out.Max
}

// Bound returns the smallest range containing both ranges.
func (r Range[T]) Bound(o Range[T]) Range[T] {
	return Range[T]{Min: min(r.Min, o.Min), Max: max(r.Max, o.Max)}
}

// Clamp limits v to the range.
func (r Range[T]) Clamp(v T) T {
	return min(max(v, r.Min), r.Max)
}

// RunMode selects which steps extend a run in Runs.
type RunMode int

const (
	// RunBoth extends runs stepping by +1 or by -1.
	RunBoth RunMode = iota
	// RunAscending only extends runs stepping by +1.
	RunAscending
)

// Run is a maximal stretch of a list where each value differs from the
// previous one by the same unit step.
type Run struct {
	First, Last int64
	// Index of First in the input list.
	Index int
	Len   int
}

// Descending reports whether the run steps by -1.
func (r Run) Descending() bool {
	return r.Last < r.First
}

// Runs splits in into maximal runs, scanning left to right. The direction of
// a run is set by its first step; a change of direction starts a new run.
// Single values form runs of length one.
func Runs(in []int64, mode RunMode) []Run {
	var out []Run
	for i := 0; i < len(in); {
		j := i
		if i+1 < len(in) {
			step := unitStep(in[i], in[i+1], mode)
			if step != 0 {
				for j+1 < len(in) && unitStep(in[j], in[j+1], mode) == step {
					j++
				}
			}
		}
		out = append(out, Run{First: in[i], Last: in[j], Index: i, Len: j - i + 1})
		i = j + 1
	}
	return out
}

func unitStep(a, b int64, mode RunMode) int64 {
	switch {
	case a != math.MaxInt64 && a+1 == b:
		return 1
	case a != math.MinInt64 && a-1 == b && mode == RunBoth:
		return -1
	}
	return 0
}

// Decompose collapses consecutive-by-one values into ranges. The input is
// expected to be sorted ascending; unsorted input yields one range per
// ascending stretch.
//
//	Decompose([]int64{1, 2, 4, 5}) // [{1 2} {4 5}]
func Decompose(in []int64) []Range[int64] {
	runs := Runs(in, RunAscending)
	out := make([]Range[int64], len(runs))
	for i, r := range runs {
		out[i] = Range[int64]{Min: r.First, Max: r.Last}
	}
	return out
}
