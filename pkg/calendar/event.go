package calendar

import (
	"errors"
	"time"
)

// StorageKey is where the event list is mirrored in durable storage.
const StorageKey = "storedEvents"

var ErrMissingEventType = errors.New("event type is required")

// Event is a calendar entry. The JSON names follow the scheduling widget's field mapping.
// Color is a snapshot of the event type's color taken on create and update.
type Event struct {
	Id          string    `json:"Id"`
	Subject     string    `json:"Subject"`
	StartTime   time.Time `json:"StartTime"`
	EndTime     time.Time `json:"EndTime"`
	IsAllDay    bool      `json:"IsAllDay"`
	Description string    `json:"Description,omitempty"`
	EventTypeId string    `json:"EventTypeId,omitempty"`
	Color       string    `json:"Color,omitempty"`
}

// ColorResolver looks up the current color of an event type.
type ColorResolver interface {
	Color(eventTypeId string) (string, bool)
}

type RequestKind string

const (
	Create RequestKind = "create"
	Update RequestKind = "update"
	Remove RequestKind = "remove"
)

// Request is one store mutation. Event carries the payload for Create and Update,
// Id names the event to Remove.
type Request struct {
	Kind  RequestKind
	Event Event
	Id    string
}

type Result struct {
	Event Event
	// Matched is false when an update or remove named no existing event.
	Matched bool
}
