package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeatSymbolError(t *testing.T) {
	// Identical sequences, with a tail shorter than the window.
	got, err := BeatSymbolError("NNVNN", "NNVNN", 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	// One beat mislabeled: a single substitution over 6 symbols.
	got, err = BeatSymbolError("NNNNNN", "NNVNNN", 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6.0, got, 1e-9)

	// The detector skipped the V beat.  The first window still matches the
	// reference outright; the mismatched tails carry the deletion.
	got, err = BeatSymbolError("NNNVN", "NNNN", 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/5.0, got, 1e-9)

	// A missed beat inside a window shifts the downstream Q into it.  With
	// the downstream context available this costs one deletion, not the
	// two edits a plain windowed comparison would charge.
	got, err = BeatSymbolError("NVSRRVQLA", "NSRRVQLA", 6)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/9.0, got, 1e-9)

	// Both empty scores a clean zero.
	got, err = BeatSymbolError("", "", 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = BeatSymbolError("NN", "NN", 0)
	assert.Error(t, err)
}
