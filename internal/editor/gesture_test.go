package editor

import "testing"

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestDragTracker(t *testing.T) {
	tests := []struct {
		name string
		run  func(d *DragTracker)
		want []EventKind
	}{
		{
			name: "press move release",
			run: func(d *DragTracker) {
				d.Press(ButtonPrimary)
				d.Move()
				d.Move()
				d.Release(ButtonPrimary)
			},
			want: []EventKind{EventDragStart, EventDrag, EventDrag, EventDragEnd},
		},
		{
			name: "motion without press",
			run:  func(d *DragTracker) { d.Move() },
			want: []EventKind{},
		},
		{
			name: "double press",
			run: func(d *DragTracker) {
				d.Press(ButtonPrimary)
				d.Press(ButtonPrimary)
			},
			want: []EventKind{EventDragStart},
		},
		{
			name: "stray release",
			run:  func(d *DragTracker) { d.Release(ButtonSecondary) },
			want: []EventKind{},
		},
		{
			name: "focus lost cancels",
			run: func(d *DragTracker) {
				d.Press(ButtonPrimary)
				d.FocusLost()
				d.Release(ButtonPrimary)
				d.Move()
			},
			want: []EventKind{EventDragStart, EventDragCancel},
		},
		{
			name: "two buttons",
			run: func(d *DragTracker) {
				d.Press(ButtonPrimary)
				d.Press(ButtonMiddle)
				d.Move()
			},
			want: []EventKind{EventDragStart, EventDragStart, EventDrag, EventDrag},
		},
		{
			name: "unknown button",
			run:  func(d *DragTracker) { d.Press(Button(7)) },
			want: []EventKind{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDragTracker(PointerMouse)
			tt.run(d)
			got := kinds(d.Flush())
			if len(got) != len(tt.want) {
				t.Fatalf("events = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDragTrackerFlushClears(t *testing.T) {
	d := NewDragTracker(PointerMouse)
	d.Press(ButtonPrimary)
	first := d.Flush()
	if len(first) != 1 || first[0].Pointer != PointerMouse || first[0].Button != ButtonPrimary {
		t.Fatalf("first flush = %+v", first)
	}
	if got := d.Flush(); len(got) != 0 {
		t.Errorf("second flush = %v, want empty", got)
	}
	if !d.Held(ButtonPrimary) {
		t.Error("primary should still be held")
	}
}
