package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab-time-tracker/internal/storage"
)

func testStore(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "token-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, "token-1", "1772190000000"))
	value, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1772190000000", value)

	// Overwrite replaces the stored value.
	require.NoError(t, store.Set(ctx, "token-1", "1772193600000"))
	value, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1772193600000", value)

	require.NoError(t, store.Delete(ctx, "token-1"))
	_, err = store.Get(ctx, "token-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "token-1"), storage.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, storage.NewMemory())
}

func TestFileStore(t *testing.T) {
	testStore(t, storage.NewFile(filepath.Join(t.TempDir(), "timestamps.json")))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timestamps.json")

	first := storage.NewFile(path)
	require.NoError(t, first.Set(ctx, "token-1", "1772190000000"))

	second := storage.NewFile(path)
	value, err := second.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "1772190000000", value)
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timestamps.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := storage.NewFile(path)
	_, err := store.Get(ctx, "token-1")
	require.Error(t, err)

	// The corrupt file is moved aside so a later write starts clean.
	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr)
	require.NoError(t, store.Set(ctx, "token-1", "1"))
}
