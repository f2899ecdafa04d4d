package metrics

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeatDetectionStats(t *testing.T) {
	// fs=250 Hz, tolerance=75 ms => 18.75 samples; 0.3 s border => 75
	// samples on each end of the record.
	const fs = 250.0
	const tol = 0.075

	tests := []struct {
		name       string
		reference  []SamplePos
		detected   []SamplePos
		tp, fp, fn int
	}{
		{"perfect", []SamplePos{200, 450, 700}, []SamplePos{200, 450, 700}, 3, 0, 0},
		{"jittered", []SamplePos{200, 450, 700}, []SamplePos{210, 440, 715}, 3, 0, 0},
		{"miss", []SamplePos{200, 450, 700}, []SamplePos{200, 700}, 2, 0, 1},
		{"spurious", []SamplePos{200, 450}, []SamplePos{200, 330, 450}, 2, 1, 0},
		{"offByTooMuch", []SamplePos{200}, []SamplePos{230}, 0, 1, 1},
		{"borderIgnored", []SamplePos{50, 200, 2960}, []SamplePos{200}, 1, 0, 0},
		{"unsortedInput", []SamplePos{700, 200, 450}, []SamplePos{450, 700, 200}, 3, 0, 0},
		{"empty", nil, nil, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := BeatDetectionStats(tt.reference, tt.detected, 3000, fs, tol)
			require.NoError(t, err)
			expect.EQ(t, stats.TP, tt.tp)
			expect.EQ(t, stats.FP, tt.fp)
			expect.EQ(t, stats.FN, tt.fn)
		})
	}
}

func TestBeatDetectionErrorStats(t *testing.T) {
	// Detections late by 10 and 5 samples: mean abs error is 7.5 samples =
	// 30 ms at 250 Hz.
	stats, err := BeatDetectionStats(
		[]SamplePos{500, 1000}, []SamplePos{510, 1005}, 2000, 250, 0.075)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TP)
	assert.InDelta(t, 0.03, stats.MeanAbsError, 1e-9)
	assert.InDelta(t, 1.0, stats.F1, 1e-9)

	stats, err = BeatDetectionStats(
		[]SamplePos{500, 1000}, []SamplePos{500}, 2000, 250, 0.075)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, stats.F1, 1e-9)

	_, err = BeatDetectionStats(nil, nil, 2000, 0, 0.075)
	assert.Error(t, err)
	_, err = BeatDetectionStats(nil, nil, 2000, 250, 0)
	assert.Error(t, err)
	_, err = BeatDetectionStats(nil, nil, 0, 250, 0.075)
	assert.Error(t, err)
}

func TestQRSScore(t *testing.T) {
	refs := [][]SamplePos{
		{200, 450, 700}, // perfect: 1
		{200, 450, 700}, // one FP: 0.7
		{200, 450, 700}, // one FN: 0.3
		{200, 450, 700}, // one FP and one FN: 0
	}
	dets := [][]SamplePos{
		{200, 450, 700},
		{200, 330, 450, 700},
		{200, 700},
		{200, 330, 700},
	}
	sigLens := []SamplePos{3000, 3000, 3000, 3000}
	score, err := QRSScore(refs, dets, sigLens, 250, 0.075)
	require.NoError(t, err)
	assert.Equal(t, 0.5, score)

	_, err = QRSScore(refs, dets[:2], sigLens, 250, 0.075)
	assert.Error(t, err)
	_, err = QRSScore(nil, nil, nil, 250, 0.075)
	assert.Error(t, err)
}
