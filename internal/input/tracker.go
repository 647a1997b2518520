// Package input turns polled cursor state into pointer move and leave events.
package input

// Event is the kind of pointer event produced by a Tracker.
type Event int

const (
	None Event = iota
	Move
	Leave
)

func (e Event) String() string {
	switch e {
	case Move:
		return "move"
	case Leave:
		return "leave"
	default:
		return "none"
	}
}

// Handler receives pointer events.
type Handler interface {
	OnPointerMove(x, y float64)
	OnPointerLeave()
}

// Tracker remembers where the cursor was on the previous frame. The host
// loop feeds it one Sample per frame.
type Tracker struct {
	width, height int
	inside        bool
	lastX, lastY  int
}

func NewTracker(width, height int) *Tracker {
	return &Tracker{width: width, height: height}
}

// Sample records the cursor position for one frame and reports the event it
// implies. An unfocused window counts as the cursor having left.
func (t *Tracker) Sample(x, y int, focused bool) Event {
	inside := focused && x >= 0 && y >= 0 && x < t.width && y < t.height

	switch {
	case inside && (!t.inside || x != t.lastX || y != t.lastY):
		t.inside = true
		t.lastX, t.lastY = x, y
		return Move
	case !inside && t.inside:
		t.inside = false
		return Leave
	}
	return None
}

// Dispatch samples the cursor and forwards the resulting event to h.
func (t *Tracker) Dispatch(h Handler, x, y int, focused bool) Event {
	ev := t.Sample(x, y, focused)
	switch ev {
	case Move:
		h.OnPointerMove(float64(x), float64(y))
	case Leave:
		h.OnPointerLeave()
	}
	return ev
}
