package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It records how many writes were made per key,
// which is handy for asserting write-through behaviour.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	writes map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		writes: make(map[string]int),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes[key]++
	return nil
}

// Writes returns the number of Set calls made for key.
func (m *MemoryStore) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}
