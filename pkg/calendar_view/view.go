package calendar_view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/klokku/planner/internal/event_bus"
	"github.com/klokku/planner/pkg/action"
	"github.com/klokku/planner/pkg/calendar"
	"github.com/klokku/planner/pkg/editor"
	"github.com/klokku/planner/pkg/event_type"
	log "github.com/sirupsen/logrus"
)

// NeutralColor paints events whose type cannot be resolved when even the fallback type is gone.
const NeutralColor = "#6B7280"

const formTimeLayout = "2006-01-02T15:04"

// FieldMapping tells the widget which record properties hold which event attributes.
type FieldMapping struct {
	Id          string `json:"id"`
	Subject     string `json:"subject"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAllDay    string `json:"isAllDay"`
	Description string `json:"description"`
	EventType   string `json:"eventType"`
}

var defaultFieldMapping = FieldMapping{
	Id:          "Id",
	Subject:     "Subject",
	StartTime:   "StartTime",
	EndTime:     "EndTime",
	IsAllDay:    "IsAllDay",
	Description: "Description",
	EventType:   editor.EventTypeFieldName,
}

// RenderedEvent is an event cell with the background it is painted with.
type RenderedEvent struct {
	calendar.Event
	Background string `json:"Background"`
}

type DataSource struct {
	Events []RenderedEvent `json:"dataSource"`
	Fields FieldMapping    `json:"fields"`
}

// View hosts the calendar page: it owns the registry and store for the session and
// routes widget notifications to the interceptor, the editor augmentation and the renderer.
type View struct {
	bus         *event_bus.EventBus
	registry    *event_type.Registry
	store       *calendar.Store
	interceptor *action.Interceptor
	augmenter   *editor.Augmenter
	queue       *editor.RenderQueue

	mu          sync.Mutex
	forms       map[string]*editor.Form
	unsubscribe []func()

	// serializes popup render passes so one Flush never runs another popup's work early
	renderMu sync.Mutex
}

func NewView(
	bus *event_bus.EventBus,
	registry *event_type.Registry,
	store *calendar.Store,
	interceptor *action.Interceptor,
	augmenter *editor.Augmenter,
	queue *editor.RenderQueue,
) *View {
	return &View{
		bus:         bus,
		registry:    registry,
		store:       store,
		interceptor: interceptor,
		augmenter:   augmenter,
		queue:       queue,
		forms:       make(map[string]*editor.Form),
	}
}

// Mount loads the registry and events from durable storage and wires the
// notification handlers. Mounting again starts a fresh session.
func (v *View) Mount(ctx context.Context) {
	v.Unmount()

	v.registry.Load(ctx)
	v.store.Load(ctx)
	v.augmenter.Reset()

	v.mu.Lock()
	v.forms = make(map[string]*editor.Form)
	v.unsubscribe = []func(){
		v.interceptor.Subscribe(v.bus),
		v.augmenter.Subscribe(v.bus),
		event_bus.SubscribeTyped[*RenderedEvent](v.bus, event_bus.EventRendered, func(e event_bus.EventT[*RenderedEvent]) error {
			e.Data.Background = v.background(e.Data.Event)
			return nil
		}),
	}
	v.mu.Unlock()
	log.Infof("Calendar mounted with %d events and %d event types", len(v.store.All()), len(v.registry.All()))
}

func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, unsubscribe := range v.unsubscribe {
		unsubscribe()
	}
	v.unsubscribe = nil
}

// DataSource renders every stored event for the widget.
func (v *View) DataSource(ctx context.Context) (DataSource, error) {
	events := v.store.All()
	rendered := make([]RenderedEvent, 0, len(events))
	for _, e := range events {
		r, err := v.EventRendered(ctx, e)
		if err != nil {
			return DataSource{}, err
		}
		rendered = append(rendered, r)
	}
	return DataSource{Events: rendered, Fields: defaultFieldMapping}, nil
}

func (v *View) EventRendered(ctx context.Context, e calendar.Event) (RenderedEvent, error) {
	r := &RenderedEvent{Event: e}
	if err := v.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventRendered, r)); err != nil {
		return RenderedEvent{}, fmt.Errorf("failed to render event %s: %w", e.Id, err)
	}
	return *r, nil
}

// background uses the color cached on the event. Events without one take the
// current color of the fallback type.
func (v *View) background(e calendar.Event) string {
	if e.Color != "" {
		return e.Color
	}
	if color, ok := v.registry.Color(event_type.FallbackId); ok && color != "" {
		return color
	}
	return NeutralColor
}

// ActionBegin applies the editor selection from a submitted form, if any, and
// publishes the request to the interceptor.
func (v *View) ActionBegin(ctx context.Context, req *action.Request, submitted *editor.Form) error {
	if editor.ApplySelection(submitted, &req.Data) {
		log.Tracef("Event type %q taken from editor form", req.Data.EventTypeId)
	}
	if err := v.bus.Publish(event_bus.NewEvent(ctx, event_bus.ActionBegin, req)); err != nil {
		return err
	}
	if req.Outcome == "" {
		req.Outcome = action.Ignored
	}
	return nil
}

// PopupOpen announces the popup, renders its base form and then runs the work deferred
// until after rendering. Forms are reused per popup instance like the widget reuses its DOM.
func (v *View) PopupOpen(ctx context.Context, popup *editor.Popup) error {
	v.renderMu.Lock()
	defer v.renderMu.Unlock()

	if err := v.bus.Publish(event_bus.NewEvent(ctx, event_bus.PopupOpen, popup)); err != nil {
		return err
	}

	v.mu.Lock()
	form, ok := v.forms[popup.InstanceId]
	if !ok {
		form = &editor.Form{}
		v.forms[popup.InstanceId] = form
	}
	v.mu.Unlock()
	renderBaseForm(form, popup)
	popup.Form = form

	v.queue.Flush()
	return nil
}

func (v *View) PopupClose(ctx context.Context, instanceId string) error {
	v.mu.Lock()
	delete(v.forms, instanceId)
	v.mu.Unlock()
	return v.bus.Publish(event_bus.NewEvent(ctx, event_bus.PopupClose, instanceId))
}

// renderBaseForm fills the widget's own fields, keeping any fields added later.
func renderBaseForm(form *editor.Form, popup *editor.Popup) {
	var e calendar.Event
	if popup.Event != nil {
		e = *popup.Event
	}
	allDay := "false"
	if e.IsAllDay {
		allDay = "true"
	}
	base := []editor.Field{
		{Name: "Subject", Label: "Title", Kind: editor.TextField, Value: e.Subject},
		{Name: "StartTime", Label: "Start", Kind: editor.DateTimeField, Value: formatFormTime(e.StartTime)},
		{Name: "EndTime", Label: "End", Kind: editor.DateTimeField, Value: formatFormTime(e.EndTime)},
		{Name: "IsAllDay", Label: "All day", Kind: editor.CheckboxField, Value: allDay},
		{Name: "Description", Label: "Description", Kind: editor.TextAreaField, Value: e.Description},
	}
	for _, f := range base {
		if existing, ok := form.Field(f.Name); ok {
			existing.Value = f.Value
			continue
		}
		form.Fields = append(form.Fields, f)
	}
}

func formatFormTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(formTimeLayout)
}
