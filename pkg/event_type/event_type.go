package event_type

import "errors"

// FallbackId is the type new events start with and the one that can never be removed.
const FallbackId = "other"

// StorageKey is where the registry is mirrored in durable storage.
const StorageKey = "storedEventTypes"

var (
	ErrInvalidEventType  = errors.New("event type requires id and name")
	ErrDuplicateId       = errors.New("event type id already exists")
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrFallbackRequired  = errors.New("the fallback event type cannot be removed")
)

// EventType is a named, colored category applied to calendar events.
type EventType struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultEventTypes returns a fresh copy of the built-in categories.
func DefaultEventTypes() []EventType {
	return []EventType{
		{Id: "Church", Name: "Church", Color: "#f63b3bff"},
		{Id: "family", Name: "Family", Color: "#f6953bff"},
		{Id: "school", Name: "School", Color: "#10B981"},
		{Id: "work", Name: "Work", Color: "#3B82F6"},
		{Id: "travel", Name: "Travel", Color: "#8B5CF6"},
		{Id: "meal", Name: "Meal", Color: "#85580aff"},
		{Id: FallbackId, Name: "Other", Color: "#6B7280"},
	}
}
