package interval

import (
	"math"
	"sort"
)

// This file includes support datatypes and functions for representing a
// canonical interval set as a []SamplePos containing a sorted sequence of
// interval-endpoints, and iterating over the covered samples.  Dense label
// masks are generated from this representation.
//
// For example, given the rhythm regions
//   [5, 15)
//   [7, 17)
//   [20, 25)
// the merged region would be
//   [5, 17) U [20, 25)
// so the sorted sequence of endpoints would be
//   {5, 17, 20, 25}.
//
// UnionScanner can be used to iterate over these positions as follows:
//   endpoints := []SamplePos{5, 17, 20, 25}
//   us := NewUnionScanner(endpoints)
//   var start, end SamplePos
//   for us.Scan(&start, &end, 22) {
//     for pos := start; pos < end; pos++ {
//       // ...fill mask[pos]...
//     }
//   }
// and a later Scan call with a larger limit picks up where this left off.

// SamplePos is the type used to represent sample indices within an ECG
// record.  int32 is wide enough for multi-hour recordings at clinical
// sampling rates (24 hours at 500 Hz is well under 2^31 samples).
type SamplePos int32

// SamplePosMax is the maximum value that can be represented by a SamplePos.
const SamplePosMax = math.MaxInt32

// SearchSamplePos returns the index of x in a[], or the position where x
// would be inserted if x isn't in a (this could be len(a)).  It's exactly
// the same as sort.SearchInts(), except for SamplePos.
func SearchSamplePos(a []SamplePos, x SamplePos) EndpointIndex {
	return EndpointIndex(sort.Search(len(a), func(i int) bool { return a[i] >= x }))
}

// ExpsearchSamplePos performs "exponential search"
// (https://en.wikipedia.org/wiki/Exponential_search ), checking a[idx],
// then a[idx + 1], then a[idx + 3], then a[idx + 7], etc., and finishing
// with binary search once it's either found an element larger than the
// target or has hit the end of the slice.  It's usually a better choice
// than SearchSamplePos when iterating.
func ExpsearchSamplePos(a []SamplePos, x SamplePos, idx EndpointIndex) EndpointIndex {
	nextIncr := EndpointIndex(1)
	startIdx := idx
	endIdx := EndpointIndex(len(a))
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	// This is really just an inlined sort.Search call.  We spell it out
	// since startIdx is usually equal to endIdx.
	for startIdx < endIdx {
		midIdx := EndpointIndex((uint(startIdx) + uint(endIdx)) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// EndpointIndex is intended to represent the result of
// SearchSamplePos(endpoints, pos+1).
// NOTE THE "+1"!  This is necessary to get SearchSamplePos to line up with
// our usual left-closed right-open intervals.
type EndpointIndex uint32

// NewEndpointIndex returns an EndpointIndex initialized to
// SearchSamplePos(endpoints, pos+1).
func NewEndpointIndex(pos SamplePos, endpoints []SamplePos) EndpointIndex {
	return SearchSamplePos(endpoints, pos+1)
}

// Contained returns whether we're inside an interval.
func (ei EndpointIndex) Contained() bool {
	return ei&1 != 0
}

// Finished returns whether we're past all the intervals.
func (ei EndpointIndex) Finished(endpoints []SamplePos) bool {
	return ei >= EndpointIndex(len(endpoints))
}

// Begin returns:
//   - the index for the beginning of the current interval, if we're inside
//     an interval
//   - otherwise, the index for the beginning of the next interval
func (ei EndpointIndex) Begin() EndpointIndex {
	return ei & (^EndpointIndex(1))
}

// Update updates the EndpointIndex to refer to newPos, which cannot be
// smaller than the previous position referred to by this EndpointIndex.
// It is substantially faster than NewEndpointIndex when the position is
// increasing slowly.
func (ei *EndpointIndex) Update(newPos SamplePos, endpoints []SamplePos) {
	*ei = ExpsearchSamplePos(endpoints, newPos+1, *ei)
}

// Endpoints flattens a canonical sample-coordinate Set into a sorted
// endpoint slice.
//
// REQUIRES: s is canonical.
func Endpoints(s Set[SamplePos]) []SamplePos {
	out := make([]SamplePos, 0, 2*len(s))
	for _, iv := range s {
		out = append(out, iv.Start, iv.End)
	}
	return out
}

// SetFromEndpoints is the inverse of Endpoints.  It panics when the slice
// has odd length.
func SetFromEndpoints(endpoints []SamplePos) Set[SamplePos] {
	if len(endpoints)%2 != 0 {
		panic("interval.SetFromEndpoints: odd endpoint count")
	}
	out := make(Set[SamplePos], 0, len(endpoints)/2)
	for i := 0; i < len(endpoints); i += 2 {
		out = append(out, Interval[SamplePos]{endpoints[i], endpoints[i+1]})
	}
	return out
}

// UnionScanner supports iteration over an interval-union.
// Invariants:
//   endpointIdx == SearchSamplePos(endpoints, pos+1)
//   pos is either contained in an interval, or is SamplePosMax
type UnionScanner struct {
	endpoints   []SamplePos
	pos         SamplePos
	endpointIdx EndpointIndex
}

// NewUnionScanner returns a UnionScanner initialized to the first interval.
func NewUnionScanner(endpoints []SamplePos) UnionScanner {
	startPos := SamplePos(SamplePosMax)
	startEndpointIdx := EndpointIndex(0)
	// May as well make this not crash when there are no intervals.
	if len(endpoints) >= 1 {
		startPos = endpoints[0]
		startEndpointIdx = 1
	}
	return UnionScanner{
		endpoints:   endpoints,
		pos:         startPos,
		endpointIdx: startEndpointIdx,
	}
}

// Pos returns the next position to be iterated over, or SamplePosMax if
// there aren't any.
func (us *UnionScanner) Pos() SamplePos {
	return us.pos
}

// Scan is written so that the following loop can be used to iterate over
// all within-interval positions up to (and not including) limit:
//   for us.Scan(&start, &end, limit) {
//     for pos := start; pos < end; pos++ {
//       // ...do stuff with pos...
//     }
//   }
func (us *UnionScanner) Scan(start *SamplePos, end *SamplePos, limit SamplePos) bool {
	if us.pos >= limit {
		return false
	}
	*start = us.pos
	intervalEnd := us.endpoints[us.endpointIdx]
	if intervalEnd > limit {
		us.pos = limit
		*end = limit
		return true
	}
	*end = intervalEnd
	us.endpointIdx++
	if us.endpointIdx.Finished(us.endpoints) {
		us.pos = SamplePosMax
	} else {
		us.pos = us.endpoints[us.endpointIdx]
		us.endpointIdx++
	}
	return true
}
