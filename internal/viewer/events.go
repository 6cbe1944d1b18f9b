package viewer

import "context"

// Event names emitted by the runtime
const (
	// EventElementDisabled is emitted on a viewport when the runtime disables it
	EventElementDisabled = "viewport:disabled"

	// EventStackScroll is emitted when a viewport's stack index changes
	EventStackScroll = "stack:scroll"

	// EventNewImage is emitted after an image is displayed in a viewport
	EventNewImage = "viewport:newimage"
)

// Event is a notification delivered to listeners of a viewport
type Event struct {
	// Name is the event name the listener was registered for
	Name string

	// Viewport is the viewport the listener was registered on
	Viewport ViewportID

	// Detail is an event specific payload
	Detail any
}

// Listener receives events from an EventTarget.
//
// Listeners are compared by identity when removed, so implementations must be
// comparable (pointer receivers are the usual choice). The context carries the
// values of the call that caused the event, so work triggered by a listener
// can be traced back to its origin.
type Listener interface {
	HandleEvent(ctx context.Context, ev Event)
}
