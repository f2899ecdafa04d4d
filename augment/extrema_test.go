package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtrema(t *testing.T) {
	sig := []float64{0, 1, 2, 1, 0, -1, 0, 1}

	got, err := Extrema(sig, ExtremaMax)
	require.NoError(t, err)
	assert.Equal(t, []SamplePos{2}, got)

	got, err = Extrema(sig, ExtremaMin)
	require.NoError(t, err)
	assert.Equal(t, []SamplePos{5}, got)

	got, err = Extrema(sig, ExtremaBoth)
	require.NoError(t, err)
	assert.Equal(t, []SamplePos{2, 5}, got)

	// Both edges of a plateau count.
	got, err = Extrema([]float64{0, 1, 1, 0}, ExtremaMax)
	require.NoError(t, err)
	assert.Equal(t, []SamplePos{1, 2}, got)

	// Monotone and too-short signals have no interior extrema.
	got, err = Extrema([]float64{0, 1, 2, 3}, ExtremaBoth)
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = Extrema([]float64{0, 1}, ExtremaBoth)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Extrema(sig, ExtremaMode(99))
	assert.Error(t, err)
}
