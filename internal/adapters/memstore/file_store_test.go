package memstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

func sampleMemory() *core.TraitMemory {
	mem := core.NewTraitMemory()
	mem.UserTraits["workEmailUser"] = true
	mem.UserTraits["traveler"] = false
	mem.Timestamps["workEmailUser"] = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return mem
}

func TestFileStoreLoadBeforeFirstSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleMemory()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.UserTraits["workEmailUser"])
	assert.False(t, loaded.UserTraits["traveler"])
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), loaded.Timestamps["workEmailUser"].UTC())
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "memory.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleMemory()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleMemory()))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err = store.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestInMemoryStoreLoadBeforeFirstSave(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	mem := sampleMemory()
	require.NoError(t, store.Save(ctx, mem))

	// Mutating the saved document must not affect the store
	mem.UserTraits["traveler"] = true

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.UserTraits["traveler"])

	// Mutating a loaded document must not affect later loads
	loaded.UserTraits["workEmailUser"] = false
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, again.UserTraits["workEmailUser"])
}
