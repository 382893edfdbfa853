package position

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotMissingValueIsZero(t *testing.T) {
	slot := NewSlot(NewMemory(), "")

	n, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSlotRoundTripUsesIndexKey(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	slot := NewSlot(mem, "")

	require.NoError(t, slot.Save(ctx, 7))

	raw, ok, err := mem.GetValue(ctx, IndexKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "7", raw)

	n, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestSlotMalformedValue(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.SetValue(ctx, IndexKey, "seven"))

	n, err := NewSlot(mem, "").Load(ctx)
	assert.ErrorIs(t, err, ErrMalformedIndex)
	assert.Equal(t, 0, n)
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "state.yaml")

	require.NoError(t, NewSlot(NewFileStore(path), "").Save(ctx, 3))

	n, err := NewSlot(NewFileStore(path), "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), IndexKey)
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nope.yaml"))
	_, ok, err := fs.GetValue(context.Background(), IndexKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))

	_, _, err := NewFileStore(path).GetValue(context.Background(), IndexKey)
	assert.Error(t, err)
}
