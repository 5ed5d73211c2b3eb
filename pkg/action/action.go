package action

import "github.com/klokku/planner/pkg/calendar"

// Kind is the widget's request type for an action.
type Kind string

const (
	EventCreate Kind = "eventCreate"
	EventChange Kind = "eventChange"
	EventRemove Kind = "eventRemove"
)

type Outcome string

const (
	// Applied means the store was mutated (or a no-op update/remove was handled) and persisted.
	Applied Outcome = "applied"
	// Rejected means validation failed; the store is untouched and Alert is set.
	Rejected Outcome = "rejected"
	// Ignored means the request kind is not a mutation handled here.
	Ignored Outcome = "ignored"
)

const MissingEventTypeAlert = "Please select an event type"

// Request mirrors the widget's action-begin notification. Handlers answer through
// Cancel, Outcome, Alert and Result.
type Request struct {
	RequestType Kind           `json:"requestType"`
	Data        calendar.Event `json:"data"`

	Cancel  bool            `json:"cancel"`
	Outcome Outcome         `json:"outcome,omitempty"`
	Alert   string          `json:"alert,omitempty"`
	Result  *calendar.Event `json:"result,omitempty"`
	Matched bool            `json:"matched"`
}

// Mutating reports whether the request kind changes stored events.
func (k Kind) Mutating() bool {
	switch k {
	case EventCreate, EventChange, EventRemove:
		return true
	}
	return false
}

func (k Kind) storeKind() calendar.RequestKind {
	switch k {
	case EventCreate:
		return calendar.Create
	case EventChange:
		return calendar.Update
	case EventRemove:
		return calendar.Remove
	}
	return ""
}
