package metrics

import (
	"fmt"
	"math"

	store "github.com/biogo/store/interval"

	"github.com/cardiokit/ecg/interval"
)

// waveInterval adapts one waveform interval to the biogo interval-tree
// element interface.
type waveInterval struct {
	start, end int
	uid        uintptr
}

func (i waveInterval) Overlap(b store.IntRange) bool {
	// Half-open interval indexing.
	return i.end > b.Start && i.start < b.End
}
func (i waveInterval) ID() uintptr           { return i.uid }
func (i waveInterval) Range() store.IntRange { return store.IntRange{Start: i.start, End: i.end} }
func (i waveInterval) String() string        { return fmt.Sprintf("[%d,%d)#%d", i.start, i.end, i.uid) }
func (i waveInterval) overlapLength(o waveInterval) int {
	lo, hi := i.start, i.end
	if o.start > lo {
		lo = o.start
	}
	if o.end < hi {
		hi = o.end
	}
	return hi - lo
}

// DelineationStats summarizes how well predicted waveform intervals (P
// waves, QRS complexes, T waves...) line up with reference intervals.
type DelineationStats struct {
	Matched int
	// Sensitivity is the fraction of reference intervals with a match;
	// PPV is the fraction of predicted intervals with a match.
	Sensitivity float64
	PPV         float64
	// Signed onset/offset errors over the matched pairs, in samples;
	// positive means the prediction is late.
	OnsetMean  float64
	OnsetStd   float64
	OffsetMean float64
	OffsetStd  float64
}

// Delineation matches each predicted interval to the overlapping reference
// interval it shares the most samples with, one match per reference, and
// reports boundary-error statistics over the matched pairs.  Both sets are
// canonicalized before matching, so overlapping inputs are merged.
func Delineation(reference, predicted interval.Set[SamplePos]) DelineationStats {
	ref := interval.Union(reference)
	pred := interval.Union(predicted)

	tree := &store.IntTree{}
	for i, iv := range ref {
		// Insert with fast=true and a single AdjustRanges afterwards, since
		// the tree is built once and then only queried.
		_ = tree.Insert(waveInterval{start: int(iv.Start), end: int(iv.End), uid: uintptr(i)}, true)
	}
	tree.AdjustRanges()

	matchedRef := make([]bool, len(ref))
	var onsetErrs, offsetErrs []float64
	for _, p := range pred {
		q := waveInterval{start: int(p.Start), end: int(p.End)}
		var best *waveInterval
		bestOverlap := 0
		for _, e := range tree.Get(q) {
			cand := e.(waveInterval)
			if matchedRef[cand.uid] {
				continue
			}
			if ov := cand.overlapLength(q); ov > bestOverlap {
				bestOverlap = ov
				c := cand
				best = &c
			}
		}
		if best == nil {
			continue
		}
		matchedRef[best.uid] = true
		onsetErrs = append(onsetErrs, float64(q.start-best.start))
		offsetErrs = append(offsetErrs, float64(q.end-best.end))
	}

	stats := DelineationStats{Matched: len(onsetErrs)}
	if len(ref) > 0 {
		stats.Sensitivity = float64(stats.Matched) / float64(len(ref))
	}
	if len(pred) > 0 {
		stats.PPV = float64(stats.Matched) / float64(len(pred))
	}
	stats.OnsetMean, stats.OnsetStd = meanStd(onsetErrs)
	stats.OffsetMean, stats.OffsetStd = meanStd(offsetErrs)
	return stats
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	std = math.Sqrt(std / float64(len(xs)))
	return
}
