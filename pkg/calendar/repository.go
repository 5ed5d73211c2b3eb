package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/planner/internal/storage"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Load(ctx context.Context) []Event
	Save(ctx context.Context, events []Event) error
}

// RepositoryImpl mirrors the event list as a JSON array under StorageKey.
type RepositoryImpl struct {
	kv storage.KeyValue
}

func NewRepository(kv storage.KeyValue) *RepositoryImpl {
	return &RepositoryImpl{kv: kv}
}

// storedTimeLayout is an ISO 8601 instant in UTC with millisecond precision.
const storedTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// storedEvent is the serialized form. Instants are strings and must be re-parsed on load.
type storedEvent struct {
	Id          storedId `json:"Id"`
	Subject     string   `json:"Subject"`
	StartTime   string   `json:"StartTime"`
	EndTime     string   `json:"EndTime"`
	IsAllDay    bool     `json:"IsAllDay"`
	Description string   `json:"Description,omitempty"`
	EventTypeId string   `json:"EventTypeId,omitempty"`
	Color       string   `json:"Color,omitempty"`
}

// storedId accepts both string ids and the numeric (millisecond timestamp) ids of older data.
type storedId string

func (id *storedId) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = storedId(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("event id must be a string or a number: %w", err)
	}
	*id = storedId(n.String())
	return nil
}

// Load never fails. Missing or malformed data yields an empty list,
// and records whose instants cannot be parsed are dropped.
func (r *RepositoryImpl) Load(ctx context.Context) []Event {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warnf("could not read events, starting empty: %v", err)
		}
		return []Event{}
	}

	var stored []storedEvent
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warnf("stored events are malformed, starting empty: %v", err)
		return []Event{}
	}

	events := make([]Event, 0, len(stored))
	for _, s := range stored {
		e, err := fromStored(s)
		if err != nil {
			log.Warnf("skipping stored event %q: %v", s.Id, err)
			continue
		}
		events = append(events, e)
	}
	return events
}

// Save writes the full list, including an empty one.
func (r *RepositoryImpl) Save(ctx context.Context, events []Event) error {
	stored := make([]storedEvent, 0, len(events))
	for _, e := range events {
		stored = append(stored, toStored(e))
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("could not encode events: %w", err)
	}
	if err := r.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("could not store events: %w", err)
	}
	return nil
}

func toStored(e Event) storedEvent {
	return storedEvent{
		Id:          storedId(e.Id),
		Subject:     e.Subject,
		StartTime:   e.StartTime.UTC().Format(storedTimeLayout),
		EndTime:     e.EndTime.UTC().Format(storedTimeLayout),
		IsAllDay:    e.IsAllDay,
		Description: e.Description,
		EventTypeId: e.EventTypeId,
		Color:       e.Color,
	}
}

func fromStored(s storedEvent) (Event, error) {
	start, err := time.Parse(time.RFC3339Nano, s.StartTime)
	if err != nil {
		return Event{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339Nano, s.EndTime)
	if err != nil {
		return Event{}, fmt.Errorf("invalid end time: %w", err)
	}
	return Event{
		Id:          string(s.Id),
		Subject:     s.Subject,
		StartTime:   start,
		EndTime:     end,
		IsAllDay:    s.IsAllDay,
		Description: s.Description,
		EventTypeId: s.EventTypeId,
		Color:       s.Color,
	}, nil
}
