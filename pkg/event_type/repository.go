package event_type

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klokku/planner/internal/storage"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Load(ctx context.Context) []EventType
	Save(ctx context.Context, types []EventType) error
}

// RepositoryImpl mirrors the registry as a JSON array under StorageKey.
type RepositoryImpl struct {
	kv storage.KeyValue
}

func NewRepository(kv storage.KeyValue) *RepositoryImpl {
	return &RepositoryImpl{kv: kv}
}

// Load never fails: missing, unreadable or empty data yields the defaults.
func (r *RepositoryImpl) Load(ctx context.Context) []EventType {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warnf("could not read event types, using defaults: %v", err)
		}
		return DefaultEventTypes()
	}

	var types []EventType
	if err := json.Unmarshal([]byte(raw), &types); err != nil {
		log.Warnf("stored event types are malformed, using defaults: %v", err)
		return DefaultEventTypes()
	}
	if len(types) == 0 {
		return DefaultEventTypes()
	}
	return types
}

// Save writes the full sequence. An empty sequence is never written.
func (r *RepositoryImpl) Save(ctx context.Context, types []EventType) error {
	if len(types) == 0 {
		log.Debug("skipping save of empty event type set")
		return nil
	}
	data, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("could not encode event types: %w", err)
	}
	if err := r.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("could not store event types: %w", err)
	}
	return nil
}
