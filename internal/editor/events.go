package editor

import "github.com/go-gl/mathgl/mgl32"

// EventKind tags an editor input event.
type EventKind int

const (
	EventDragStart EventKind = iota + 1
	EventDrag
	EventDragEnd
	// EventDragCancel is sent when a drag loses focus without a release.
	// It ends the stroke exactly like EventDragEnd.
	EventDragCancel
	EventDeselectAll
	EventSerialize
)

var eventNames = map[EventKind]string{
	EventDragStart:   "drag_start",
	EventDrag:        "drag",
	EventDragEnd:     "drag_end",
	EventDragCancel:  "drag_cancel",
	EventDeselectAll: "deselect_all",
	EventSerialize:   "serialize",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// PointerID identifies the device that produced a pointer event.
type PointerID int

const (
	PointerMouse PointerID = iota
	PointerTouch
)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Event is one input event delivered to the editor for a frame.
type Event struct {
	Kind    EventKind
	Pointer PointerID
	Button  Button
}

// FrameInput is everything the host hands the editor for one frame.
type FrameInput struct {
	Cursor    mgl32.Vec2 // window pixels, origin top-left
	HasCursor bool
	OverUI    bool // pointer is over non-scene UI
	Events    []Event
}

// isPrimaryMouse reports whether the event drives the brush.
func (ev Event) isPrimaryMouse() bool {
	return ev.Pointer == PointerMouse && ev.Button == ButtonPrimary
}

type (
	selectionHandler func(e *Editor, ev Event, ptr PointerState)
	outputHandler    func(e *Editor) error
)

// selectionHandlers run in the selection phase, after pointer projection and
// before deformation.
var selectionHandlers = map[EventKind]selectionHandler{
	EventDragStart:   (*Editor).onDragStart,
	EventDrag:        (*Editor).onDrag,
	EventDragEnd:     (*Editor).onDragEnd,
	EventDragCancel:  (*Editor).onDragCancel,
	EventDeselectAll: (*Editor).onDeselectAll,
}

// outputHandlers run last, once the mesh buffers are synced for the frame.
var outputHandlers = map[EventKind]outputHandler{
	EventSerialize: (*Editor).serialize,
}
