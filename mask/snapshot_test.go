package mask

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	m := make([]byte, 5000)
	for i := range m {
		m[i] = byte(i % 4)
	}
	path := filepath.Join(tempDir, "record17.mask")
	require.NoError(t, WriteSnapshot(ctx, path, m))
	got, err := ReadSnapshot(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	// Empty masks are legal.
	path = filepath.Join(tempDir, "empty.mask")
	require.NoError(t, WriteSnapshot(ctx, path, nil))
	got, err = ReadSnapshot(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotCorruption(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	m := []byte{1, 2, 3, 2, 1, 0, 0, 0, 3, 3}
	path := filepath.Join(tempDir, "record.mask")
	require.NoError(t, WriteSnapshot(ctx, path, m))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	flipped := append([]byte(nil), data...)
	flipped[len(snapshotMagic)+13] ^= 0x40
	require.NoError(t, os.WriteFile(path, flipped, 0644))
	_, err = ReadSnapshot(ctx, path)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "checksum mismatch")
	}

	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0644))
	_, err = ReadSnapshot(ctx, path)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "truncated")
	}

	require.NoError(t, os.WriteFile(path, []byte("BOGUS"), 0644))
	_, err = ReadSnapshot(ctx, path)
	assert.Error(t, err)

	_, err = ReadSnapshot(ctx, filepath.Join(tempDir, "nonexistent.mask"))
	assert.Error(t, err)
}
