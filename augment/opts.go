package augment

// MaskingOpts configures random-masking augmentation.  Widths and budgets
// are in seconds and fractions, so one set of opts serves records at any
// sampling frequency.
type MaskingOpts struct {
	// Fs is the sampling frequency of the signals to be augmented, in Hz.
	Fs float64
	// SignalProb is the probability that a given signal is masked at all.
	SignalProb float64
	// PointProb is the probability that each candidate critical point
	// (e.g. an R peak) proposes a masking window.  0.15 approximates the
	// proportion of a beat the QRS complex occupies.
	PointProb float64
	// MaskValue is the multiplier applied to samples inside selected
	// windows.  0 blanks them out.
	MaskValue float64
	// MinWidth and MaxWidth bound the masking-window width, in seconds.
	MinWidth float64
	MaxWidth float64
	// MaxCoverage caps the fraction of the signal the selected windows may
	// cover in total.  0 = no cap.
	MaxCoverage float64
	// MaxWindows caps the number of windows per signal.  0 = no cap.
	MaxWindows int
}

// DefaultMaskingOpts sets the default values to MaskingOpts.  Fs has no
// sensible default and must be filled in by the caller.
var DefaultMaskingOpts = MaskingOpts{
	SignalProb:  0.3,
	PointProb:   0.15,
	MaskValue:   0.0,
	MinWidth:    0.08,
	MaxWidth:    0.18,
	MaxCoverage: 0.3,
	MaxWindows:  0,
}
