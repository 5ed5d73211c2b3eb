package editor

import "github.com/klokku/planner/pkg/calendar"

type PopupType string

const (
	EditorPopup    PopupType = "Editor"
	QuickInfoPopup PopupType = "QuickInfo"
)

type FieldKind string

const (
	TextField     FieldKind = "text"
	TextAreaField FieldKind = "textarea"
	DateTimeField FieldKind = "datetime"
	CheckboxField FieldKind = "checkbox"
	SelectField   FieldKind = "select"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Value   string    `json:"value"`
	Options []Option  `json:"options,omitempty"`
}

// Form is the editing surface of a popup as an ordered list of fields.
type Form struct {
	Fields []Field `json:"fields"`
}

func (f *Form) Field(name string) (*Field, bool) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// Popup is a widget popup about to be shown. Event is nil when the popup creates a new event.
type Popup struct {
	InstanceId string          `json:"instanceId"`
	Type       PopupType       `json:"type"`
	Event      *calendar.Event `json:"data,omitempty"`
	Form       *Form           `json:"form,omitempty"`
}

// IsNew reports whether the popup edits an event that has not been stored yet.
func (p *Popup) IsNew() bool {
	return p.Event == nil || p.Event.Id == ""
}
