package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klokku/planner/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyValue(t *testing.T, kv KeyValue) {
	ctx := context.Background()

	_, err := kv.Get(ctx, "storedEvents")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "storedEvents", `[]`))
	value, err := kv.Get(ctx, "storedEvents")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	require.NoError(t, kv.Set(ctx, "storedEvents", `[{"Id":"1"}]`))
	value, err = kv.Get(ctx, "storedEvents")
	require.NoError(t, err)
	assert.Equal(t, `[{"Id":"1"}]`, value)

	require.NoError(t, kv.Set(ctx, "storedEventTypes", `[]`))
	value, err = kv.Get(ctx, "storedEvents")
	require.NoError(t, err)
	assert.Equal(t, `[{"Id":"1"}]`, value, "keys are independent")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testKeyValue(t, store)

	assert.Equal(t, 2, store.Writes("storedEvents"))
	assert.Equal(t, 1, store.Writes("storedEventTypes"))
	assert.Equal(t, 0, store.Writes("unknown"))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planner.json")
	testKeyValue(t, NewFileStore(path))

	// a new instance sees the persisted data
	value, err := NewFileStore(path).Get(context.Background(), "storedEvents")
	require.NoError(t, err)
	assert.Equal(t, `[{"Id":"1"}]`, value)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	store := NewFileStore(path)

	_, err := store.Get(context.Background(), "storedEvents")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(context.Background(), "storedEvents", `[]`))
	value, err := store.Get(context.Background(), "storedEvents")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestSQLStore(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	store, err := NewSQLStore(db, "sqlite")
	require.NoError(t, err)

	testKeyValue(t, store)
}

func TestNewSQLStore_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLStore(nil, "mysql")
	assert.Error(t, err)
}
