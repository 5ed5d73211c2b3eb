package event_type

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/klokku/planner/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEventTypes(t *testing.T) {
	types := DefaultEventTypes()

	require.Len(t, types, 7)
	ids := make(map[string]bool)
	for _, et := range types {
		assert.False(t, ids[et.Id], "duplicate id %s", et.Id)
		ids[et.Id] = true
	}
	assert.True(t, ids["Church"])
	assert.True(t, ids["work"])
	assert.True(t, ids[FallbackId])

	church := types[0]
	work := types[3]
	assert.Equal(t, "Church", church.Id)
	assert.Equal(t, "Church", church.Name)
	assert.Equal(t, "work", work.Id)
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "#3B82F6", work.Color)
	assert.NotEqual(t, church.Name, work.Name)
}

func TestDefaultEventTypes_ReturnsCopy(t *testing.T) {
	types := DefaultEventTypes()
	types[0].Color = "#000000"

	assert.Equal(t, "#f63b3bff", DefaultEventTypes()[0].Color)
}

func TestRepository_Load(t *testing.T) {
	ctx := context.Background()
	custom := []EventType{{Id: "gym", Name: "Gym", Color: "#111111"}, {Id: FallbackId, Name: "Other", Color: "#6B7280"}}
	customJSON, err := json.Marshal(custom)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		stored *string
		want   []EventType
	}{
		{name: "absent key", stored: nil, want: DefaultEventTypes()},
		{name: "malformed json", stored: ptr("[{broken"), want: DefaultEventTypes()},
		{name: "empty array", stored: ptr("[]"), want: DefaultEventTypes()},
		{name: "stored types", stored: ptr(string(customJSON)), want: custom},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			if tc.stored != nil {
				require.NoError(t, kv.Set(ctx, StorageKey, *tc.stored))
			}

			got := NewRepository(kv).Load(ctx)

			assert.Equal(t, tc.want, got)
		})
	}
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingKV) Set(ctx context.Context, key string, value string) error {
	return errors.New("disk on fire")
}

func TestRepository_LoadStorageError(t *testing.T) {
	got := NewRepository(failingKV{}).Load(context.Background())
	assert.Equal(t, DefaultEventTypes(), got)
}

func TestRepository_SaveSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	repo := NewRepository(kv)

	require.NoError(t, repo.Save(ctx, nil))
	require.NoError(t, repo.Save(ctx, []EventType{}))
	assert.Equal(t, 0, kv.Writes(StorageKey))

	require.NoError(t, repo.Save(ctx, DefaultEventTypes()))
	assert.Equal(t, 1, kv.Writes(StorageKey))
	assert.Equal(t, DefaultEventTypes(), repo.Load(ctx))
}

func TestRepository_SaveStorageError(t *testing.T) {
	err := NewRepository(failingKV{}).Save(context.Background(), DefaultEventTypes())
	assert.Error(t, err)
}

func ptr(s string) *string {
	return &s
}
