package event_bus

// Notifications raised by the scheduling widget and forwarded to the server.
const (
	// ActionBegin carries a mutating (or other) request before the widget applies it.
	ActionBegin EventType = "widget.action_begin"
	// PopupOpen carries a popup that is about to render.
	PopupOpen EventType = "widget.popup_open"
	// PopupClose carries the instance id of a popup that was closed.
	PopupClose EventType = "widget.popup_close"
	// EventRendered carries an event cell that is about to be painted.
	EventRendered EventType = "widget.event_rendered"
)
