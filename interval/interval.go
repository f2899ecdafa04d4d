package interval

import "fmt"

// Unit is the set of coordinate types an Interval can use: integer sample
// indices, or real-valued time/frequency coordinates.
type Unit interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Interval is a half-open range [Start, End) over a numeric coordinate
// type.
//
// INVARIANT: Start < End.  New enforces this at the boundary; every other
// function in this package assumes validated input and does not re-check
// (these run per-record, per-batch during training-data loading).
type Interval[T Unit] struct {
	Start, End T
}

// InvalidIntervalError reports interval bounds that are not strictly
// increasing.  Degenerate (zero-length) intervals are rejected too;
// operations that can legally produce them say so explicitly.
type InvalidIntervalError struct {
	Start, End any
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("interval: invalid bounds [%v, %v): end must be greater than start", e.Start, e.End)
}

// New validates [start, end) and returns the corresponding Interval.
// Empty and inverted intervals fail with *InvalidIntervalError.
func New[T Unit](start, end T) (Interval[T], error) {
	if end <= start {
		return Interval[T]{}, &InvalidIntervalError{Start: start, End: end}
	}
	return Interval[T]{Start: start, End: end}, nil
}

// Must is New, except it panics on invalid bounds.  For literals in tests
// and package setup.
func Must[T Unit](start, end T) Interval[T] {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Contains reports whether p lies inside the interval.  The right endpoint
// is exclusive: Contains(End) is false.
func (iv Interval[T]) Contains(p T) bool {
	return iv.Start <= p && p < iv.End
}

// Overlaps reports whether iv and other share at least one point.
// Touching intervals ([0,5) and [5,10)) do not overlap.
func (iv Interval[T]) Overlaps(other Interval[T]) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Intersect returns the overlap of iv and other, clipped to the tightest
// bounds.  ok is false when the intervals are disjoint or merely touch.
func (iv Interval[T]) Intersect(other Interval[T]) (Interval[T], bool) {
	if !iv.Overlaps(other) {
		return Interval[T]{}, false
	}
	if other.Start > iv.Start {
		iv.Start = other.Start
	}
	if other.End < iv.End {
		iv.End = other.End
	}
	return iv, true
}

// Length returns End - Start.
func (iv Interval[T]) Length() T {
	return iv.End - iv.Start
}

func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%v, %v)", iv.Start, iv.End)
}
