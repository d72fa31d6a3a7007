package window

// Event is a single item of the window's event stream. The set of variants is closed:
// only the types declared in this package implement it.
type Event interface {
	isEvent()
}

// CloseRequested is emitted when the user asks the window to close (title bar button, Alt+F4, ...).
// The window stays open until the owner calls Close.
type CloseRequested struct{}

// KeyPressed is emitted for key presses and key repeats.
type KeyPressed struct {
	// Key is the virtual key code, see the common.Key* constants.
	Key uint32
}

// KeyReleased is emitted when a key is released.
type KeyReleased struct {
	// Key is the virtual key code, see the common.Key* constants.
	Key uint32
}

// CursorMoved is emitted when the cursor moves within the window's client area.
type CursorMoved struct {
	X, Y float64
}

// Resized is emitted when the framebuffer changes size. Dimensions are in pixels and may be
// zero while the window is minimized.
type Resized struct {
	Width, Height int
}

// ScaleFactorChanged is emitted when the window moves to a display with a different content scale.
// Width and Height carry the new framebuffer size in pixels.
type ScaleFactorChanged struct {
	ScaleX, ScaleY float32
	Width, Height  int
}

// RedrawRequested is emitted once for every RequestRedraw call, after the pending window events.
type RedrawRequested struct{}

// MainEventsCleared is emitted after all events of one platform pump have been delivered.
type MainEventsCleared struct{}

func (CloseRequested) isEvent()     {}
func (KeyPressed) isEvent()         {}
func (KeyReleased) isEvent()        {}
func (CursorMoved) isEvent()        {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (RedrawRequested) isEvent()    {}
func (MainEventsCleared) isEvent()  {}

// eventQueue is a FIFO of pending events filled by platform callbacks.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

func (q *eventQueue) len() int {
	return len(q.events)
}
