// Package augment implements data augmentation for ECG training pipelines.
package augment

import (
	"fmt"
	"math/rand"

	"github.com/cardiokit/ecg/annotation"
	"github.com/cardiokit/ecg/interval"
)

// SamplePos is the coordinate type for window boundaries.
type SamplePos = annotation.SamplePos

// Masker randomly blanks out windows of a signal, preferentially around
// critical points (fiducial sample indices such as R peaks), so a model
// cannot rely on any single waveform being visible.  The randomness source
// is injected; a Masker never touches global state, and two Maskers seeded
// identically produce identical window sequences.
//
// A Masker is not safe for concurrent use; give each loader goroutine its
// own.
type Masker struct {
	opts MaskingOpts
	rng  *rand.Rand

	minWidthSamples int
	maxWidthSamples int
}

// NewMasker validates opts and builds a Masker around the given randomness
// source.
func NewMasker(opts MaskingOpts, rng *rand.Rand) (*Masker, error) {
	if opts.Fs <= 0 {
		return nil, fmt.Errorf("augment.NewMasker: invalid sampling frequency %g", opts.Fs)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"SignalProb", opts.SignalProb},
		{"PointProb", opts.PointProb},
	} {
		if p.value < 0 || p.value > 1 {
			return nil, fmt.Errorf("augment.NewMasker: %s %g out of [0, 1]", p.name, p.value)
		}
	}
	if opts.MinWidth <= 0 || opts.MaxWidth < opts.MinWidth {
		return nil, fmt.Errorf("augment.NewMasker: invalid width range [%g, %g]", opts.MinWidth, opts.MaxWidth)
	}
	if opts.MaxCoverage < 0 || opts.MaxCoverage > 1 {
		return nil, fmt.Errorf("augment.NewMasker: MaxCoverage %g out of [0, 1]", opts.MaxCoverage)
	}
	if opts.MaxWindows < 0 {
		return nil, fmt.Errorf("augment.NewMasker: negative MaxWindows %d", opts.MaxWindows)
	}
	if rng == nil {
		return nil, fmt.Errorf("augment.NewMasker: nil randomness source")
	}
	m := &Masker{
		opts:            opts,
		rng:             rng,
		minWidthSamples: int(opts.MinWidth*opts.Fs + 0.5),
		maxWidthSamples: int(opts.MaxWidth*opts.Fs + 0.5),
	}
	if m.minWidthSamples < 1 {
		m.minWidthSamples = 1
	}
	if m.maxWidthSamples < m.minWidthSamples {
		m.maxWidthSamples = m.minWidthSamples
	}
	return m, nil
}

// Windows proposes masking windows for one signal of sigLen samples and
// selects a subset respecting the coverage and count budgets.  Each
// critical point proposes a window of random width centered on it with
// probability PointProb; when criticalPoints is nil, window centers are
// drawn uniformly at the density a typical beat sequence would produce.
// The returned set is disjoint and sorted.
func (m *Masker) Windows(sigLen SamplePos, criticalPoints []SamplePos) (interval.Set[SamplePos], error) {
	if sigLen <= 0 {
		return nil, fmt.Errorf("augment.Windows: invalid signal length %d", sigLen)
	}
	var centers []SamplePos
	if criticalPoints != nil {
		for _, p := range criticalPoints {
			if m.rng.Float64() < m.opts.PointProb {
				centers = append(centers, p)
			}
		}
	} else {
		// No fiducials available: draw centers at the per-sample density
		// that makes the expected masked fraction come out at PointProb.
		density := m.opts.PointProb / float64(m.maxWidthSamples)
		n := int(density*float64(int(sigLen)) + 0.5)
		for i := 0; i < n; i++ {
			centers = append(centers, SamplePos(m.rng.Intn(int(sigLen))))
		}
	}

	candidates := make([]interval.Interval[SamplePos], 0, len(centers))
	for _, c := range centers {
		radius := SamplePos(m.randWidthSamples() / 2)
		start, end := c-radius, c+radius
		if start < 0 {
			start = 0
		}
		if end > sigLen {
			end = sigLen
		}
		if start >= end {
			continue
		}
		candidates = append(candidates, interval.Interval[SamplePos]{Start: start, End: end})
	}

	bounds := interval.Interval[SamplePos]{Start: 0, End: sigLen}
	budget := interval.CoveringOpts{MaxCount: m.opts.MaxWindows}
	if m.opts.MaxCoverage > 0 {
		budget.MaxTotalLength = m.opts.MaxCoverage * float64(sigLen)
	}
	selected, _, err := interval.OptimalCovering(bounds, candidates, budget)
	if err != nil {
		return nil, fmt.Errorf("augment.Windows: %v", err)
	}
	return selected, nil
}

func (m *Masker) randWidthSamples() int {
	if m.maxWidthSamples == m.minWidthSamples {
		return m.minWidthSamples
	}
	return m.minWidthSamples + m.rng.Intn(m.maxWidthSamples-m.minWidthSamples+1)
}

// Apply masks sig in place: with probability SignalProb it selects windows
// via Windows and multiplies the samples inside them by MaskValue.  It
// reports whether the signal was masked.
func (m *Masker) Apply(sig []float64, criticalPoints []SamplePos) (bool, error) {
	if len(sig) == 0 {
		return false, fmt.Errorf("augment.Apply: empty signal")
	}
	if m.rng.Float64() >= m.opts.SignalProb {
		return false, nil
	}
	windows, err := m.Windows(SamplePos(len(sig)), criticalPoints)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		for pos := w.Start; pos < w.End; pos++ {
			sig[pos] *= m.opts.MaskValue
		}
	}
	return true, nil
}
