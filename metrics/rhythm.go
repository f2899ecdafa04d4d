package metrics

import (
	"github.com/cardiokit/ecg/annotation"
	"github.com/cardiokit/ecg/interval"
)

// RhythmOverlap computes, for each rhythm label, the Jaccard overlap ratio
// |truth ∩ pred| / |truth ∪ pred| between the two annotations' regions,
// restricted to the bounds window.  Labels with no samples in the window
// under either annotation are left out of the result; a label annotated on
// one side only scores 0.
func RhythmOverlap(truth, pred *annotation.RhythmUnion, bounds interval.Interval[SamplePos]) map[string]float64 {
	labels := map[string]bool{}
	for _, label := range truth.Labels() {
		labels[label] = true
	}
	for _, label := range pred.Labels() {
		labels[label] = true
	}
	out := make(map[string]float64, len(labels))
	for label := range labels {
		tset := truth.LabelSet(label).Clip(bounds)
		pset := pred.LabelSet(label).Clip(bounds)
		unionLen := tset.Union(pset).Length()
		if unionLen == 0 {
			continue
		}
		out[label] = float64(tset.Intersect(pset).Length()) / float64(unionLen)
	}
	return out
}
