package calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store holds the session's events. It is the single source of truth while the
// service runs; the repository is only a write-through mirror read at Load.
type Store struct {
	mu     sync.RWMutex
	repo   Repository
	colors ColorResolver
	newId  func() string
	events []Event
}

func NewStore(repo Repository, colors ColorResolver) *Store {
	return &Store{
		repo:   repo,
		colors: colors,
		newId:  newEventId,
		events: []Event{},
	}
}

func newEventId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) Load(ctx context.Context) {
	events := s.repo.Load(ctx)

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	log.Debugf("Loaded %d events", len(events))
}

func (s *Store) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) Get(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Event{}, false
	}
	return s.events[i], true
}

// Create assigns a fresh id and the event type's color, then appends the event.
// Without an event type nothing is stored and ErrMissingEventType is returned.
func (s *Store) Create(ctx context.Context, candidate Event) (Event, error) {
	if strings.TrimSpace(candidate.EventTypeId) == "" {
		return Event{}, ErrMissingEventType
	}

	candidate.Id = s.newId()
	candidate.Color = s.resolveColor(candidate.EventTypeId)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, candidate)
	s.persist(ctx)
	log.Debugf("Created event %s (%s)", candidate.Id, candidate.EventTypeId)
	return candidate, nil
}

// Update replaces the first event with the candidate's id. Any color on the candidate
// is discarded and resolved again. An unknown id leaves the store untouched.
func (s *Store) Update(ctx context.Context, candidate Event) (Event, bool) {
	candidate.Color = s.resolveColor(candidate.EventTypeId)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(candidate.Id)
	if i < 0 {
		log.Debugf("Update for unknown event %q ignored", candidate.Id)
		return candidate, false
	}
	s.events[i] = candidate
	s.persist(ctx)
	return candidate, true
}

// Remove deletes the event with the given id and returns it. An unknown id leaves the store untouched.
func (s *Store) Remove(ctx context.Context, id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed Event
	found := false
	kept := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.Id == id {
			removed, found = e, true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		log.Debugf("Remove for unknown event %q ignored", id)
		return Event{}, false
	}
	s.events = kept
	s.persist(ctx)
	return removed, true
}

// Apply performs exactly one mutation described by req.
func (s *Store) Apply(ctx context.Context, req Request) (Result, error) {
	switch req.Kind {
	case Create:
		e, err := s.Create(ctx, req.Event)
		if err != nil {
			return Result{}, err
		}
		return Result{Event: e, Matched: true}, nil
	case Update:
		e, ok := s.Update(ctx, req.Event)
		return Result{Event: e, Matched: ok}, nil
	case Remove:
		id := req.Id
		if id == "" {
			id = req.Event.Id
		}
		e, ok := s.Remove(ctx, id)
		return Result{Event: e, Matched: ok}, nil
	default:
		return Result{}, fmt.Errorf("unknown request kind: %s", req.Kind)
	}
}

func (s *Store) resolveColor(eventTypeId string) string {
	if s.colors == nil {
		return ""
	}
	color, ok := s.colors.Color(eventTypeId)
	if !ok {
		log.Debugf("event type %q not found, leaving color empty", eventTypeId)
		return ""
	}
	return color
}

// persist must be called with the write lock held. Storage failures are logged
// and the in-memory state stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.events); err != nil {
		log.Errorf("failed to persist events: %v", err)
	}
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.events {
		if e.Id == id {
			return i
		}
	}
	return -1
}
