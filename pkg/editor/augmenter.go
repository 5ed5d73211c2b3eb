package editor

import (
	"sync"

	"github.com/klokku/planner/internal/event_bus"
	"github.com/klokku/planner/pkg/calendar"
	"github.com/klokku/planner/pkg/event_type"
	log "github.com/sirupsen/logrus"
)

const (
	EventTypeFieldName  = "EventTypeId"
	eventTypeFieldLabel = "Event Type"
)

type TypeSource interface {
	All() []event_type.EventType
}

// Augmenter adds the event type selector to editor popups once their form has rendered.
// The selector is inserted at most once per popup instance.
type Augmenter struct {
	types TypeSource
	queue Deferrer

	mu       sync.Mutex
	injected map[string]bool
}

func NewAugmenter(types TypeSource, queue Deferrer) *Augmenter {
	return &Augmenter{
		types:    types,
		queue:    queue,
		injected: make(map[string]bool),
	}
}

// PopupOpen schedules the injection for editor popups. Other popup types are left alone.
func (a *Augmenter) PopupOpen(p *Popup) {
	if p.Type != EditorPopup {
		return
	}
	a.queue.Defer(func() {
		a.inject(p)
	})
}

func (a *Augmenter) inject(p *Popup) {
	if p.Form == nil {
		log.Warnf("editor popup %s has no rendered form, skipping event type field", p.InstanceId)
		return
	}

	a.mu.Lock()
	first := !a.injected[p.InstanceId]
	a.injected[p.InstanceId] = true
	a.mu.Unlock()

	field, exists := p.Form.Field(EventTypeFieldName)
	if first && !exists {
		p.Form.Fields = append(p.Form.Fields, Field{
			Name:  EventTypeFieldName,
			Label: eventTypeFieldLabel,
			Kind:  SelectField,
		})
		field, exists = p.Form.Field(EventTypeFieldName)
	}
	if !exists {
		log.Debugf("event type field already handled for popup %s", p.InstanceId)
		return
	}

	types := a.types.All()
	field.Options = make([]Option, 0, len(types))
	for _, t := range types {
		field.Options = append(field.Options, Option{Value: t.Id, Label: t.Name})
	}
	field.Value = preselect(p, types)
}

func preselect(p *Popup, types []event_type.EventType) string {
	if p.IsNew() || p.Event.EventTypeId == "" {
		return event_type.FallbackId
	}
	for _, t := range types {
		if t.Id == p.Event.EventTypeId {
			return t.Id
		}
	}
	return event_type.FallbackId
}

// PopupClose forgets the instance so a fresh popup with the same id gets the field again.
func (a *Augmenter) PopupClose(instanceId string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.injected, instanceId)
}

// Reset forgets every instance. Called when the calendar is mounted.
func (a *Augmenter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.injected = make(map[string]bool)
}

// ApplySelection copies the chosen event type from a submitted form onto e.
func ApplySelection(form *Form, e *calendar.Event) bool {
	if form == nil {
		return false
	}
	field, ok := form.Field(EventTypeFieldName)
	if !ok || field.Value == "" {
		return false
	}
	e.EventTypeId = field.Value
	return true
}

func (a *Augmenter) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubOpen := event_bus.SubscribeTyped[*Popup](bus, event_bus.PopupOpen, func(e event_bus.EventT[*Popup]) error {
		a.PopupOpen(e.Data)
		return nil
	})
	unsubClose := event_bus.SubscribeTyped[string](bus, event_bus.PopupClose, func(e event_bus.EventT[string]) error {
		a.PopupClose(e.Data)
		return nil
	})
	return func() {
		unsubOpen()
		unsubClose()
	}
}
