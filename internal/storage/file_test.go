package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSlotAbsent(t *testing.T) {
	slot, err := NewFileSlot(t.TempDir(), "cards")
	require.NoError(t, err)

	data, ok, err := slot.Read()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFileSlotWriteRead(t *testing.T) {
	slot, err := NewFileSlot(t.TempDir(), "cards")
	require.NoError(t, err)

	require.NoError(t, slot.Write([]byte(`[{"id":"a"}]`)))
	data, ok, err := slot.Read()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	// a later write fully replaces the document
	require.NoError(t, slot.Write([]byte(`[]`)))
	data, ok, err = slot.Read()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))
}

func TestFileSlotLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir, "cards")
	require.NoError(t, err)
	require.NoError(t, slot.Write([]byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cards.json", filepath.Base(entries[0].Name()))
}

func TestFileSlotCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileSlot(dir, "cards")
	assert.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
