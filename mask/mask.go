package mask

import (
	"fmt"
	"sort"

	"github.com/cardiokit/ecg/annotation"
	"github.com/cardiokit/ecg/interval"
)

// SamplePos is the coordinate type for mask boundaries.
type SamplePos = annotation.SamplePos

// FromRhythms renders the labeled regions of u into a per-sample class
// mask over the window [sampfrom, sampto).  classOf assigns the class ID
// painted for each label; samples covered by no mapped label get the
// background ID.  Labels absent from classOf are skipped.  When mapped
// labels overlap, the label with the larger class ID wins, so the caller
// controls precedence through the ID assignment.
func FromRhythms(u *annotation.RhythmUnion, classOf map[string]int, sampfrom, sampto SamplePos, background int) ([]byte, error) {
	if sampto <= sampfrom || sampfrom < 0 {
		return nil, fmt.Errorf("mask.FromRhythms: invalid window [%d, %d)", sampfrom, sampto)
	}
	if background < 0 || background > 255 {
		return nil, fmt.Errorf("mask.FromRhythms: background class ID %d out of byte range", background)
	}
	out := make([]byte, sampto-sampfrom)
	if background != 0 {
		for i := range out {
			out[i] = byte(background)
		}
	}
	// Paint in increasing class-ID order; precedence then just works out.
	type layer struct {
		classID int
		label   string
	}
	layers := make([]layer, 0, len(classOf))
	for _, label := range u.Labels() {
		classID, found := classOf[label]
		if !found {
			continue
		}
		if classID < 0 || classID > 255 {
			return nil, fmt.Errorf("mask.FromRhythms: class ID %d for label %q out of byte range", classID, label)
		}
		layers = append(layers, layer{classID, label})
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].classID < layers[j].classID })
	for _, l := range layers {
		endpoints := interval.Endpoints(u.LabelSet(l.label))
		scanner := interval.NewUnionScanner(endpoints)
		var start, end SamplePos
		for scanner.Scan(&start, &end, sampto) {
			if end <= sampfrom {
				continue
			}
			if start < sampfrom {
				start = sampfrom
			}
			for pos := start; pos < end; pos++ {
				out[pos-sampfrom] = byte(l.classID)
			}
		}
	}
	return out, nil
}

// ToIntervals recovers the disjoint regions carrying the given class from a
// per-sample mask, as mask-relative coordinates.  It is the inverse of
// FromRhythms for any class that no higher-precedence class overpainted.
func ToIntervals(m []byte, classID int) interval.Set[SamplePos] {
	out := interval.Set[SamplePos]{}
	runStart := -1
	for i, c := range m {
		if int(c) == classID {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			out = append(out, interval.Interval[SamplePos]{Start: SamplePos(runStart), End: SamplePos(i)})
			runStart = -1
		}
	}
	if runStart >= 0 {
		out = append(out, interval.Interval[SamplePos]{Start: SamplePos(runStart), End: SamplePos(len(m))})
	}
	return out
}

// Weights builds a per-sample loss-weight vector of the given length: the
// base weight everywhere, and the boost weight on the union of the
// [p - radius, p + radius + 1) neighborhoods of the critical points
// (fiducial sample indices such as R peaks), clipped to [0, length).
func Weights(length int, criticalPoints []SamplePos, radius SamplePos, base, boost float64) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("mask.Weights: invalid length %d", length)
	}
	if radius < 0 {
		return nil, fmt.Errorf("mask.Weights: negative radius %d", radius)
	}
	out := make([]float64, length)
	for i := range out {
		out[i] = base
	}
	hoods := make([]interval.Interval[SamplePos], 0, len(criticalPoints))
	for _, p := range criticalPoints {
		start := p - radius
		if start < 0 {
			start = 0
		}
		end := p + radius + 1
		if end > SamplePos(length) {
			end = SamplePos(length)
		}
		if start >= end {
			continue
		}
		hoods = append(hoods, interval.Interval[SamplePos]{Start: start, End: end})
	}
	scanner := interval.NewUnionScanner(interval.Endpoints(interval.Union(hoods)))
	var start, end SamplePos
	for scanner.Scan(&start, &end, SamplePos(length)) {
		for pos := start; pos < end; pos++ {
			out[pos] = boost
		}
	}
	return out, nil
}
