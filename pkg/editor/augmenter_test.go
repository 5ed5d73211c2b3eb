package editor

import (
	"context"
	"testing"

	"github.com/klokku/planner/internal/event_bus"
	"github.com/klokku/planner/pkg/calendar"
	"github.com/klokku/planner/pkg/event_type"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAugmenterTest(t *testing.T) (*Augmenter, *RenderQueue, *event_type.Registry) {
	registry := event_type.NewRegistry(event_type.NewRepositoryStub())
	registry.Load(context.Background())
	queue := NewRenderQueue()
	return NewAugmenter(registry, queue), queue, registry
}

func baseForm() *Form {
	return &Form{Fields: []Field{
		{Name: "Subject", Label: "Title", Kind: TextField},
		{Name: "Description", Label: "Description", Kind: TextAreaField},
	}}
}

func eventTypeFields(form *Form) int {
	n := 0
	for _, f := range form.Fields {
		if f.Name == EventTypeFieldName {
			n++
		}
	}
	return n
}

func TestAugmenter_InjectsAfterRender(t *testing.T) {
	augmenter, queue, registry := setupAugmenterTest(t)
	popup := &Popup{InstanceId: "p1", Type: EditorPopup}

	augmenter.PopupOpen(popup)
	assert.Nil(t, popup.Form, "nothing happens before the render pass")

	popup.Form = baseForm()
	queue.Flush()

	field, ok := popup.Form.Field(EventTypeFieldName)
	require.True(t, ok)
	assert.Equal(t, SelectField, field.Kind)
	types := registry.All()
	require.Len(t, field.Options, len(types))
	for i, tp := range types {
		assert.Equal(t, Option{Value: tp.Id, Label: tp.Name}, field.Options[i])
	}
	assert.Equal(t, popup.Form.Fields[len(popup.Form.Fields)-1].Name, EventTypeFieldName)
}

func TestAugmenter_Preselection(t *testing.T) {
	testCases := []struct {
		name  string
		event *calendar.Event
		want  string
	}{
		{name: "new event", event: nil, want: "other"},
		{name: "new event with prefilled slot", event: &calendar.Event{Subject: "slot"}, want: "other"},
		{name: "existing school event", event: &calendar.Event{Id: "1", EventTypeId: "school"}, want: "school"},
		{name: "existing event without type", event: &calendar.Event{Id: "2"}, want: "other"},
		{name: "existing event with deleted type", event: &calendar.Event{Id: "3", EventTypeId: "gone"}, want: "other"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			augmenter, queue, _ := setupAugmenterTest(t)
			popup := &Popup{InstanceId: "p1", Type: EditorPopup, Event: tc.event, Form: baseForm()}

			augmenter.PopupOpen(popup)
			queue.Flush()

			field, ok := popup.Form.Field(EventTypeFieldName)
			require.True(t, ok)
			assert.Equal(t, tc.want, field.Value)
		})
	}
}

func TestAugmenter_IgnoresOtherPopups(t *testing.T) {
	augmenter, queue, _ := setupAugmenterTest(t)
	popup := &Popup{InstanceId: "q1", Type: QuickInfoPopup, Form: baseForm()}

	augmenter.PopupOpen(popup)

	assert.Equal(t, 0, queue.Pending())
	queue.Flush()
	assert.Equal(t, 0, eventTypeFields(popup.Form))
}

func TestAugmenter_NoDoubleInsertion(t *testing.T) {
	augmenter, queue, _ := setupAugmenterTest(t)
	form := baseForm()
	popup := &Popup{InstanceId: "p1", Type: EditorPopup, Form: form}

	augmenter.PopupOpen(popup)
	augmenter.PopupOpen(popup)
	queue.Flush()
	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Event: &calendar.Event{Id: "1", EventTypeId: "meal"}, Form: form})
	queue.Flush()

	assert.Equal(t, 1, eventTypeFields(form))
	field, _ := form.Field(EventTypeFieldName)
	assert.Equal(t, "meal", field.Value, "reopening refreshes the selection")
}

func TestAugmenter_GuardIsKeyedByInstance(t *testing.T) {
	augmenter, queue, _ := setupAugmenterTest(t)

	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Form: baseForm()})
	queue.Flush()

	// the guard remembers p1, so a fresh form for the same instance is not touched
	fresh := baseForm()
	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Form: fresh})
	queue.Flush()
	assert.Equal(t, 0, eventTypeFields(fresh))

	other := baseForm()
	augmenter.PopupOpen(&Popup{InstanceId: "p2", Type: EditorPopup, Form: other})
	queue.Flush()
	assert.Equal(t, 1, eventTypeFields(other))
}

func TestAugmenter_CloseAndResetReleaseGuard(t *testing.T) {
	augmenter, queue, _ := setupAugmenterTest(t)
	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Form: baseForm()})
	queue.Flush()

	augmenter.PopupClose("p1")
	reopened := baseForm()
	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Form: reopened})
	queue.Flush()
	assert.Equal(t, 1, eventTypeFields(reopened))

	augmenter.Reset()
	remounted := baseForm()
	augmenter.PopupOpen(&Popup{InstanceId: "p1", Type: EditorPopup, Form: remounted})
	queue.Flush()
	assert.Equal(t, 1, eventTypeFields(remounted))
}

func TestAugmenter_OptionsFollowRegistry(t *testing.T) {
	augmenter, queue, registry := setupAugmenterTest(t)
	_, err := registry.Add(context.Background(), event_type.EventType{Id: "gym", Name: "Gym", Color: "#111111"})
	require.NoError(t, err)
	popup := &Popup{InstanceId: "p1", Type: EditorPopup, Form: baseForm()}

	augmenter.PopupOpen(popup)
	queue.Flush()

	field, _ := popup.Form.Field(EventTypeFieldName)
	assert.Equal(t, Option{Value: "gym", Label: "Gym"}, field.Options[len(field.Options)-1])
}

func TestApplySelection(t *testing.T) {
	form := baseForm()
	form.Fields = append(form.Fields, Field{Name: EventTypeFieldName, Kind: SelectField, Value: "travel"})
	e := calendar.Event{Subject: "Flight", EventTypeId: "other"}

	assert.True(t, ApplySelection(form, &e))
	assert.Equal(t, "travel", e.EventTypeId)

	untouched := calendar.Event{EventTypeId: "work"}
	assert.False(t, ApplySelection(baseForm(), &untouched))
	assert.False(t, ApplySelection(nil, &untouched))
	assert.Equal(t, "work", untouched.EventTypeId)
}

func TestAugmenter_Subscribe(t *testing.T) {
	augmenter, queue, _ := setupAugmenterTest(t)
	bus := event_bus.NewEventBus()
	augmenter.Subscribe(bus)
	ctx := context.Background()

	popup := &Popup{InstanceId: "p1", Type: EditorPopup, Form: baseForm()}
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.PopupOpen, popup)))
	queue.Flush()
	assert.Equal(t, 1, eventTypeFields(popup.Form))

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.PopupClose, "p1")))
	again := &Popup{InstanceId: "p1", Type: EditorPopup, Form: baseForm()}
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.PopupOpen, again)))
	queue.Flush()
	assert.Equal(t, 1, eventTypeFields(again.Form))
}
