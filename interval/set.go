package interval

import "sort"

// Set is a generalized interval: a possibly non-contiguous region
// represented as a sequence of Intervals.  The canonical form is sorted
// ascending by start, pairwise disjoint, and non-touching.  Union and the
// Set methods always return canonical results; the zero value is the empty
// region.
//
// Sets are value types.  No operation mutates its receiver or arguments.
type Set[T Unit] []Interval[T]

// Union merges an arbitrary interval list into canonical form.  Intervals
// that overlap or touch (a.End >= b.Start) are merged into one spanning
// interval; output order is ascending by start.
func Union[T Unit](ivs []Interval[T]) Set[T] {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval[T], len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	out := Set[T]{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			// Overlapping or touching: extend the previous interval.
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Intersection returns the sub-ranges covered by at least two of the input
// intervals, each clipped to the tightest bounds, canonicalized.  An empty
// result is a valid empty Set, not an error.
func Intersection[T Unit](ivs []Interval[T]) Set[T] {
	if len(ivs) < 2 {
		return nil
	}
	// Endpoint sweep: a region belongs to the intersection iff its coverage
	// depth is >= 2.  At equal coordinates, ends sort before starts, so
	// touching intervals never register as overlapping.
	type event struct {
		x     T
		delta int
	}
	events := make([]event, 0, 2*len(ivs))
	for _, iv := range ivs {
		events = append(events, event{iv.Start, 1}, event{iv.End, -1})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].x != events[j].x {
			return events[i].x < events[j].x
		}
		return events[i].delta < events[j].delta
	})
	var out Set[T]
	depth := 0
	var openStart T
	for _, ev := range events {
		prev := depth
		depth += ev.delta
		if prev < 2 && depth >= 2 {
			openStart = ev.x
		} else if prev >= 2 && depth < 2 && ev.x > openStart {
			out = append(out, Interval[T]{openStart, ev.x})
		}
	}
	return Union(out)
}

// Complement returns the gaps of s inside bounds: the sub-ranges of bounds
// not covered by s.  s may lie fully outside, fully cover, or partially
// cover bounds; a fully covered bounds yields an empty Set.
func Complement[T Unit](bounds Interval[T], s Set[T]) Set[T] {
	var out Set[T]
	cur := bounds.Start
	for _, iv := range s.canonicalize() {
		if iv.End <= bounds.Start {
			continue
		}
		if iv.Start >= bounds.End {
			break
		}
		if iv.Start > cur {
			out = append(out, Interval[T]{cur, iv.Start})
		}
		if iv.End > cur {
			cur = iv.End
		}
	}
	if cur < bounds.End {
		out = append(out, Interval[T]{cur, bounds.End})
	}
	return out
}

// canonical reports whether s is sorted, disjoint, and non-touching.
func (s Set[T]) canonical() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Start <= s[i-1].End {
			return false
		}
	}
	return true
}

// canonicalize returns s unchanged when already canonical; otherwise the
// merged form.  The canonical check is a single linear pass, so operations
// stay cheap on the common already-merged inputs.
func (s Set[T]) canonicalize() Set[T] {
	if s.canonical() {
		return s
	}
	return Union(s)
}

// Length returns the total covered length.  Non-canonical input is merged
// first so overlapping pieces are not double-counted.
func (s Set[T]) Length() T {
	var n T
	for _, iv := range s.canonicalize() {
		n += iv.End - iv.Start
	}
	return n
}

// Contains reports whether p lies inside any member interval.
//
// REQUIRES: s is canonical.
func (s Set[T]) Contains(p T) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End > p })
	return i < len(s) && s[i].Contains(p)
}

// Union returns the region covered by s or o, canonicalized.
func (s Set[T]) Union(o Set[T]) Set[T] {
	merged := make([]Interval[T], 0, len(s)+len(o))
	merged = append(merged, s...)
	merged = append(merged, o...)
	return Union(merged)
}

// Intersect returns the region covered by both s and o, canonicalized.
// It is commutative: s.Intersect(o) and o.Intersect(s) are equal.
func (s Set[T]) Intersect(o Set[T]) Set[T] {
	a, b := s.canonicalize(), o.canonicalize()
	var out Set[T]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if iv, ok := a[i].Intersect(b[j]); ok {
			out = append(out, iv)
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return out
}

// Overlaps reports whether s and o share any point.  It agrees with
// Intersect: true iff s.Intersect(o) is nonempty.
func (s Set[T]) Overlaps(o Set[T]) bool {
	a, b := s.canonicalize(), o.canonicalize()
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Overlaps(b[j]) {
			return true
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return false
}

// Clip restricts s to bounds.  Shorthand for intersecting with the
// single-interval region [bounds.Start, bounds.End); annotation windowing
// is exactly this operation.
func (s Set[T]) Clip(bounds Interval[T]) Set[T] {
	return s.Intersect(Set[T]{bounds})
}

// Equal reports whether s and o describe the same region.
func (s Set[T]) Equal(o Set[T]) bool {
	a, b := s.canonicalize(), o.canonicalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
