package interval

import (
	"fmt"
	"sort"
)

func sortByEnd[T Unit](ivs []Interval[T]) []Interval[T] {
	sorted := make([]Interval[T], len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].End != sorted[j].End {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// MaxDisjointCovering selects a maximum-cardinality subset of pairwise
// non-overlapping intervals from ivs, which may overlap arbitrarily.
// Earliest-end-time-first greedy selection, optimal for the unweighted
// problem.  O(n log n).  Result is ascending by start; touching intervals
// are allowed in the output since they do not overlap.
func MaxDisjointCovering[T Unit](ivs []Interval[T]) []Interval[T] {
	if len(ivs) == 0 {
		return nil
	}
	sorted := sortByEnd(ivs)
	out := []Interval[T]{sorted[0]}
	lastEnd := sorted[0].End
	for _, iv := range sorted[1:] {
		if iv.Start >= lastEnd {
			out = append(out, iv)
			lastEnd = iv.End
		}
	}
	return out
}

// MaxWeightCovering selects the subset of pairwise non-overlapping
// intervals maximizing the summed weight, via the interval-scheduling
// dynamic program with binary search for the closest compatible
// predecessor.  Earliest-end greedy is not optimal once weights differ, so
// there is no greedy shortcut here.  O(n log n).  Result is ascending by
// start.
func MaxWeightCovering[T Unit](ivs []Interval[T], weight func(Interval[T]) float64) []Interval[T] {
	n := len(ivs)
	if n == 0 {
		return nil
	}
	sorted := sortByEnd(ivs)
	// pred[i] is the number of intervals in sorted[:i] compatible with
	// sorted[i]: the largest k such that sorted[k-1].End <= sorted[i].Start.
	pred := make([]int, n)
	for i, iv := range sorted {
		start := iv.Start
		pred[i] = sort.Search(i, func(j int) bool { return sorted[j].End > start })
	}
	// best[i] is the max weight over sorted[:i]; take[i-1] records whether
	// sorted[i-1] is in that optimum.
	best := make([]float64, n+1)
	take := make([]bool, n)
	for i := 1; i <= n; i++ {
		skip := best[i-1]
		with := best[pred[i-1]] + weight(sorted[i-1])
		if with > skip {
			best[i] = with
			take[i-1] = true
		} else {
			best[i] = skip
		}
	}
	var out []Interval[T]
	for i := n; i > 0; {
		if take[i-1] {
			out = append(out, sorted[i-1])
			i = pred[i-1]
		} else {
			i--
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// CoveringOpts bounds the resources OptimalCovering may spend.  The zero
// value means no budget at all (cover as much as the candidates allow).
type CoveringOpts struct {
	// MaxCount caps the number of selected candidates.  0 = no cap.
	MaxCount int
	// MaxTotalLength caps the summed (unclipped) length of the selected
	// candidates.  0 = no cap.
	MaxTotalLength float64
}

// OptimalCovering selects a subset of candidates maximizing the covered
// length of bounds, subject to opts, and returns the covering in canonical
// form together with the fraction of bounds covered.
//
// Selection is greedy by marginal gain: each step takes the candidate
// adding the most currently-uncovered length.  Under a pure MaxCount
// budget this is the standard greedy for budgeted maximum coverage, with a
// guaranteed 1-1/e fraction of the optimal covered length; with a
// MaxTotalLength budget the guarantee degrades to (1-1/e)/2.  Exact
// selection is NP-hard; the bounded-ratio greedy keeps window selection
// cheap enough to run per record during loading.
func OptimalCovering[T Unit](bounds Interval[T], candidates []Interval[T], opts CoveringOpts) (Set[T], float64, error) {
	if opts.MaxCount < 0 || opts.MaxTotalLength < 0 {
		return nil, 0, fmt.Errorf("interval.OptimalCovering: negative budget %+v", opts)
	}
	var covered Set[T]
	picked := make([]bool, len(candidates))
	nPicked := 0
	spent := 0.0
	for {
		if opts.MaxCount > 0 && nPicked == opts.MaxCount {
			break
		}
		gaps := Complement(bounds, covered)
		if len(gaps) == 0 {
			break
		}
		bestIdx := -1
		bestGain := 0.0
		for i, cand := range candidates {
			if picked[i] {
				continue
			}
			if opts.MaxTotalLength > 0 && spent+float64(cand.Length()) > opts.MaxTotalLength {
				continue
			}
			gain := float64(gaps.Intersect(Set[T]{cand}).Length())
			if gain > bestGain {
				bestGain = gain
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		picked[bestIdx] = true
		nPicked++
		spent += float64(candidates[bestIdx].Length())
		covered = covered.Union(Set[T]{candidates[bestIdx]}.Clip(bounds))
	}
	ratio := float64(covered.Length()) / float64(bounds.Length())
	return covered, ratio, nil
}
