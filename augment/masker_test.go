package augment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMasker(t *testing.T, opts MaskingOpts, seed int64) *Masker {
	m, err := NewMasker(opts, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return m
}

func TestNewMaskerValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	good := DefaultMaskingOpts
	good.Fs = 250
	_, err := NewMasker(good, rng)
	assert.NoError(t, err)

	for _, mutate := range []func(*MaskingOpts){
		func(o *MaskingOpts) { o.Fs = 0 },
		func(o *MaskingOpts) { o.SignalProb = 1.5 },
		func(o *MaskingOpts) { o.PointProb = -0.1 },
		func(o *MaskingOpts) { o.MinWidth = 0 },
		func(o *MaskingOpts) { o.MaxWidth = o.MinWidth / 2 },
		func(o *MaskingOpts) { o.MaxCoverage = 2 },
		func(o *MaskingOpts) { o.MaxWindows = -1 },
	} {
		opts := good
		mutate(&opts)
		_, err := NewMasker(opts, rng)
		assert.Error(t, err)
	}
	_, err = NewMasker(good, nil)
	assert.Error(t, err)
}

func TestWindows(t *testing.T) {
	opts := DefaultMaskingOpts
	opts.Fs = 250
	opts.PointProb = 1 // every critical point proposes a window
	m := newTestMasker(t, opts, 42)

	const sigLen = 5000
	points := make([]SamplePos, 0)
	for p := SamplePos(200); p < sigLen; p += 250 {
		points = append(points, p)
	}
	windows, err := m.Windows(sigLen, points)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	budget := opts.MaxCoverage * sigLen
	assert.LessOrEqual(t, float64(windows.Length()), budget)
	for i, w := range windows {
		assert.Less(t, w.Start, w.End)
		assert.GreaterOrEqual(t, w.Start, SamplePos(0))
		assert.LessOrEqual(t, w.End, SamplePos(sigLen))
		if i > 0 {
			assert.Less(t, windows[i-1].End, w.Start, "windows must be disjoint and sorted")
		}
	}

	// Same opts and seed, same windows.
	again, err := newTestMasker(t, opts, 42).Windows(sigLen, points)
	require.NoError(t, err)
	assert.Equal(t, windows, again)

	// Without fiducials the masker still produces in-range windows.
	blind, err := newTestMasker(t, opts, 7).Windows(sigLen, nil)
	require.NoError(t, err)
	for _, w := range blind {
		assert.GreaterOrEqual(t, w.Start, SamplePos(0))
		assert.LessOrEqual(t, w.End, SamplePos(sigLen))
	}

	_, err = m.Windows(0, points)
	assert.Error(t, err)
}

func TestWindowsMaxWindows(t *testing.T) {
	opts := DefaultMaskingOpts
	opts.Fs = 250
	opts.PointProb = 1
	opts.MaxCoverage = 0
	opts.MaxWindows = 2
	m := newTestMasker(t, opts, 3)

	points := []SamplePos{500, 1500, 2500, 3500, 4500}
	windows, err := m.Windows(5000, points)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(windows), 2)
	assert.NotEmpty(t, windows)
}

func TestApply(t *testing.T) {
	opts := DefaultMaskingOpts
	opts.Fs = 250
	opts.SignalProb = 1
	opts.PointProb = 1
	m := newTestMasker(t, opts, 11)

	sig := make([]float64, 2000)
	for i := range sig {
		sig[i] = 1.0
	}
	masked, err := m.Apply(sig, []SamplePos{400, 900, 1400})
	require.NoError(t, err)
	require.True(t, masked)

	zeros := 0
	for _, v := range sig {
		switch v {
		case 0:
			zeros++
		case 1:
		default:
			t.Fatalf("sample has unexpected value %g", v)
		}
	}
	assert.Greater(t, zeros, 0)
	assert.LessOrEqual(t, float64(zeros), opts.MaxCoverage*float64(len(sig)))

	// SignalProb 0 leaves the signal alone.
	opts.SignalProb = 0
	m = newTestMasker(t, opts, 11)
	sig2 := []float64{1, 2, 3}
	masked, err = m.Apply(sig2, nil)
	require.NoError(t, err)
	assert.False(t, masked)
	assert.Equal(t, []float64{1, 2, 3}, sig2)

	_, err = m.Apply(nil, nil)
	assert.Error(t, err)
}
