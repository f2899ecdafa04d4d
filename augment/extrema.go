package augment

import "fmt"

// ExtremaMode selects which local extrema Extrema reports.
type ExtremaMode int

const (
	ExtremaMax ExtremaMode = iota
	ExtremaMin
	ExtremaBoth
)

// Extrema returns the indices where the discrete derivative of sig changes
// sign: local maxima, local minima, or both.  Both edges of a flat plateau
// are reported.  Signals shorter than 3 samples have no interior extrema.
//
// The result can serve as the criticalPoints argument of Masker.Windows
// when no fiducial annotations are available for a record.
func Extrema(sig []float64, mode ExtremaMode) ([]SamplePos, error) {
	if mode != ExtremaMax && mode != ExtremaMin && mode != ExtremaBoth {
		return nil, fmt.Errorf("augment.Extrema: invalid mode %d", mode)
	}
	var out []SamplePos
	if len(sig) < 3 {
		return out, nil
	}
	prev := sign(sig[1] - sig[0])
	for i := 1; i+1 < len(sig); i++ {
		cur := sign(sig[i+1] - sig[i])
		switch {
		case cur < prev && mode != ExtremaMin:
			out = append(out, SamplePos(i))
		case cur > prev && mode != ExtremaMax:
			out = append(out, SamplePos(i))
		}
		prev = cur
	}
	return out, nil
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
