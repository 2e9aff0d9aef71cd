package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/shimenv/internal/envdiff"
	"github.com/hbjs97/shimenv/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	snap := &envdiff.Snapshot{
		Vars:           map[string]string{"PATH": "bogus:/bin", "MYVALUE": "canary"},
		NewPathEntries: []string{"bogus"},
	}

	require.NoError(t, s.Write("key1", snap))

	got, err := s.Read("key1")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestRead_NotFound(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	_, err := s.Read("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRead_Corrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key1"), []byte("{not json"), 0600))

	_, err := s.Read("key1")
	assert.ErrorIs(t, err, store.ErrCacheCorrupt)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestWrite_Supersedes(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	first := &envdiff.Snapshot{Vars: map[string]string{"A": "1"}}
	second := &envdiff.Snapshot{Vars: map[string]string{"B": "2"}}

	require.NoError(t, s.Write("key1", first))
	require.NoError(t, s.Write("key1", second))

	got, err := s.Read("key1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Write("key1", envdiff.Empty()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "key1", entries[0].Name())
}

func TestRemove_Idempotent(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	require.NoError(t, s.Write("key1", envdiff.Empty()))
	require.NoError(t, s.Remove("key1"))
	require.NoError(t, s.Remove("key1"))

	_, err := s.Read("key1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEmptySnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	s := store.New(t.TempDir())
	require.NoError(t, s.Write("key1", envdiff.Empty()))

	got, err := s.Read("key1")
	require.NoError(t, err)
	assert.Empty(t, got.Vars)
	assert.Empty(t, got.NewPathEntries)
}
