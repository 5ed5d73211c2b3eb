package event_type

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Registry is the in-memory, ordered set of event types for the session.
// Every mutation is written through to the repository.
type Registry struct {
	mu    sync.RWMutex
	repo  Repository
	types []EventType
}

func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo}
}

// Load replaces the in-memory set with what the repository holds.
// The fallback type is appended when the stored set lacks it.
func (r *Registry) Load(ctx context.Context) {
	types := r.repo.Load(ctx)
	if indexOf(types, FallbackId) < 0 {
		for _, t := range DefaultEventTypes() {
			if t.Id == FallbackId {
				types = append(types, t)
			}
		}
	}

	r.mu.Lock()
	r.types = types
	r.mu.Unlock()
	log.Debugf("Loaded %d event types", len(types))
}

func (r *Registry) All() []EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]EventType, len(r.types))
	copy(out, r.types)
	return out
}

func (r *Registry) Get(id string) (EventType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := indexOf(r.types, id)
	if i < 0 {
		return EventType{}, false
	}
	return r.types[i], true
}

// Color resolves the display color of the event type with the given id.
func (r *Registry) Color(id string) (string, bool) {
	t, ok := r.Get(id)
	if !ok {
		return "", false
	}
	return t.Color, true
}

func (r *Registry) Add(ctx context.Context, t EventType) (EventType, error) {
	t = normalize(t)
	if t.Id == "" || t.Name == "" {
		return EventType{}, ErrInvalidEventType
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if indexOf(r.types, t.Id) >= 0 {
		return EventType{}, ErrDuplicateId
	}
	r.types = append(r.types, t)
	r.persist(ctx)
	return t, nil
}

// Replace overwrites the event type with the same id, keeping its position.
func (r *Registry) Replace(ctx context.Context, t EventType) (EventType, error) {
	t = normalize(t)
	if t.Id == "" || t.Name == "" {
		return EventType{}, ErrInvalidEventType
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := indexOf(r.types, t.Id)
	if i < 0 {
		return EventType{}, ErrEventTypeNotFound
	}
	r.types[i] = t
	r.persist(ctx)
	return t, nil
}

// Remove deletes the event type. Events referencing it keep their id and cached color.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if id == FallbackId {
		return ErrFallbackRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := indexOf(r.types, id)
	if i < 0 {
		return ErrEventTypeNotFound
	}
	r.types = append(r.types[:i:i], r.types[i+1:]...)
	r.persist(ctx)
	return nil
}

// persist must be called with the write lock held.
func (r *Registry) persist(ctx context.Context) {
	if err := r.repo.Save(ctx, r.types); err != nil {
		log.Errorf("failed to persist event types: %v", err)
	}
}

func normalize(t EventType) EventType {
	t.Id = strings.TrimSpace(t.Id)
	t.Name = strings.TrimSpace(t.Name)
	t.Color = strings.TrimSpace(t.Color)
	return t
}

func indexOf(types []EventType, id string) int {
	for i, t := range types {
		if t.Id == id {
			return i
		}
	}
	return -1
}
