package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpoint_InitializesToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dst.offset")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp.Close()
	assert.Equal(t, path, cp.Path())

	off, err := cp.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)

	// The zero must be persisted, not just returned.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))
}

func TestCheckpoint_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dst.offset")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	require.NoError(t, cp.Persist(10485760))
	require.NoError(t, cp.Close())

	cp2, err := OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp2.Close()

	off, err := cp2.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(10485760), off)
}

func TestCheckpoint_RewritesNotAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dst.offset")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp.Close()

	// A shrinking decimal width would expose stale trailing digits if the
	// file were not truncated first.
	require.NoError(t, cp.Persist(1048576))
	require.NoError(t, cp.Persist(9))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9", string(data))
}

func TestCheckpoint_TrailingNewlineAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dst.offset")
	require.NoError(t, os.WriteFile(path, []byte("4096\n"), 0o644))

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp.Close()

	off, err := cp.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(4096), off)
}

func TestCheckpoint_CorruptContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "NonNumeric", content: "banana"},
		{name: "Negative", content: "-5"},
		{name: "MixedDigits", content: "12x4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dst.offset")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cp, err := OpenCheckpoint(path)
			require.NoError(t, err)
			defer cp.Close()

			_, err = cp.Load()
			require.ErrorIs(t, err, ErrResumeState)
		})
	}
}
