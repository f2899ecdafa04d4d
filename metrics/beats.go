package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/cardiokit/ecg/annotation"
)

// SamplePos is the coordinate type for peak positions.
type SamplePos = annotation.SamplePos

// borderSec is how much of each record edge is excluded from beat scoring.
// Detectors are allowed to miss peaks they cannot see enough context for.
const borderSec = 0.3

// BeatStats summarizes one record's beat-detection performance.
type BeatStats struct {
	TP int
	FP int
	FN int
	// F1 is the harmonic mean of sensitivity and precision.  It is 0 when
	// there is nothing to score.
	F1 float64
	// MeanAbsError is the mean absolute reference-to-detection distance in
	// seconds, over the TP pairs.
	MeanAbsError float64
}

// BeatDetectionStats scores detected beat positions against reference
// positions for one record of sigLen samples.  A detection matches a
// reference peak when the two are within tolerance seconds; each detection
// matches at most one reference.  Peaks within 0.3 s of either record
// border are dropped from both sequences before matching.
func BeatDetectionStats(reference, detected []SamplePos, sigLen SamplePos, fs, tolerance float64) (BeatStats, error) {
	var stats BeatStats
	if fs <= 0 {
		return stats, fmt.Errorf("metrics.BeatDetectionStats: invalid sampling frequency %g", fs)
	}
	if tolerance <= 0 {
		return stats, fmt.Errorf("metrics.BeatDetectionStats: invalid tolerance %g", tolerance)
	}
	if sigLen <= 0 {
		return stats, fmt.Errorf("metrics.BeatDetectionStats: invalid signal length %d", sigLen)
	}
	border := SamplePos(borderSec * fs)
	ref := trimBorder(reference, border, sigLen-border)
	det := trimBorder(detected, border, sigLen-border)

	tolSamples := tolerance * fs
	var sumAbs float64
	j := 0
	for _, r := range ref {
		for j < len(det) && float64(r-det[j]) > tolSamples {
			j++
		}
		if j < len(det) && math.Abs(float64(det[j]-r)) <= tolSamples {
			stats.TP++
			sumAbs += math.Abs(float64(det[j] - r))
			j++
		}
	}
	stats.FN = len(ref) - stats.TP
	stats.FP = len(det) - stats.TP
	if denom := 2*stats.TP + stats.FP + stats.FN; denom > 0 {
		stats.F1 = float64(2*stats.TP) / float64(denom)
	}
	if stats.TP > 0 {
		stats.MeanAbsError = sumAbs / float64(stats.TP) / fs
	}
	return stats, nil
}

// trimBorder returns the sorted peaks restricted to [low, high].
func trimBorder(peaks []SamplePos, low, high SamplePos) []SamplePos {
	kept := make([]SamplePos, 0, len(peaks))
	for _, p := range peaks {
		if p >= low && p <= high {
			kept = append(kept, p)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	return kept
}

// QRSScore computes the CPSC-2019 aggregate detection score over a set of
// records.  Each record contributes one flag: 1 for a perfect record, 0.7
// for a single false positive, 0.3 for a single false negative, and 0 for
// anything worse.  The result is the mean flag, rounded to 4 decimals.
func QRSScore(references, detections [][]SamplePos, sigLens []SamplePos, fs, tolerance float64) (float64, error) {
	if len(references) != len(detections) || len(references) != len(sigLens) {
		return 0, fmt.Errorf("metrics.QRSScore: %d reference, %d detection, %d length records",
			len(references), len(detections), len(sigLens))
	}
	if len(references) == 0 {
		return 0, fmt.Errorf("metrics.QRSScore: no records")
	}
	var total float64
	for i := range references {
		stats, err := BeatDetectionStats(references[i], detections[i], sigLens[i], fs, tolerance)
		if err != nil {
			return 0, err
		}
		switch {
		case stats.FP == 0 && stats.FN == 0:
			total += 1
		case stats.FP == 1 && stats.FN == 0:
			total += 0.7
		case stats.FP == 0 && stats.FN == 1:
			total += 0.3
		}
	}
	return math.Round(total/float64(len(references))*1e4) / 1e4, nil
}
