package editor

// DragTracker turns raw button and motion input from one pointer into drag
// events. A drag begins on press, continues on every motion while the button
// is held and ends on release. Losing focus cancels every held drag.
type DragTracker struct {
	pointer PointerID
	held    [ButtonMiddle + 1]bool
	pending []Event
}

// NewDragTracker creates a tracker for one pointer device.
func NewDragTracker(p PointerID) *DragTracker {
	return &DragTracker{pointer: p}
}

func (d *DragTracker) emit(kind EventKind, b Button) {
	d.pending = append(d.pending, Event{Kind: kind, Pointer: d.pointer, Button: b})
}

func valid(b Button) bool {
	return b >= ButtonPrimary && b <= ButtonMiddle
}

// Press starts a drag. A press on an already held button is ignored.
func (d *DragTracker) Press(b Button) {
	if !valid(b) || d.held[b] {
		return
	}
	d.held[b] = true
	d.emit(EventDragStart, b)
}

// Release ends a drag. Releasing a button that is not held is ignored.
func (d *DragTracker) Release(b Button) {
	if !valid(b) || !d.held[b] {
		return
	}
	d.held[b] = false
	d.emit(EventDragEnd, b)
}

// Move reports pointer motion to every held button.
func (d *DragTracker) Move() {
	for b := ButtonPrimary; b <= ButtonMiddle; b++ {
		if d.held[b] {
			d.emit(EventDrag, b)
		}
	}
}

// FocusLost cancels every held drag.
func (d *DragTracker) FocusLost() {
	for b := ButtonPrimary; b <= ButtonMiddle; b++ {
		if d.held[b] {
			d.held[b] = false
			d.emit(EventDragCancel, b)
		}
	}
}

// Held reports whether a button is currently dragging.
func (d *DragTracker) Held(b Button) bool {
	return valid(b) && d.held[b]
}

// Flush returns the events gathered since the last call.
func (d *DragTracker) Flush() []Event {
	out := d.pending
	d.pending = nil
	return out
}
