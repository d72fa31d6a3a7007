package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and a pull-based event stream.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// PollEvent returns the next pending event. When no event is pending the platform is pumped
	// once; the events it produced are followed by a MainEventsCleared event, and a pending
	// redraw request is delivered as RedrawRequested after that.
	//
	// Returns:
	//   - Event: the next event, or nil once the window has been closed
	//   - bool: false once the window has been closed and no events remain
	PollEvent() (Event, bool)

	// RequestRedraw schedules a single RedrawRequested event. Multiple requests before the
	// event is delivered collapse into one, so at most one redraw is ever in flight.
	RequestRedraw()

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window. A surface created
	// from it must be released before Close is called.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// platformWindow is implemented by each platform backend. Callbacks registered in init push
// events onto the parent engineWindow's queue.
type platformWindow interface {
	init(w *engineWindow) error
	processMessages()
	isRunning() bool
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and the pending event queue.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// platform holds the platform-specific window (glfwWindow unless replaced in tests).
	platform platformWindow

	// events holds events produced by platform callbacks that have not been polled yet.
	events eventQueue

	// redrawPending is set by RequestRedraw and cleared when RedrawRequested is delivered.
	redrawPending bool

	closed bool
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order, then creates the platform window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  200,
		minHeight: 150,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.platform == nil {
		w.platform = &glfwWindow{}
	}
	if err := w.platform.init(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) PollEvent() (Event, bool) {
	if ev, ok := w.events.pop(); ok {
		return ev, true
	}
	if w.redrawPending {
		w.redrawPending = false
		return RedrawRequested{}, true
	}
	if !w.IsRunning() {
		return nil, false
	}

	w.platform.processMessages()
	w.events.push(MainEventsCleared{})

	ev, _ := w.events.pop()
	return ev, true
}

func (w *engineWindow) RequestRedraw() {
	w.redrawPending = true
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return !w.closed && w.platform.isRunning()
}

func (w *engineWindow) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.platform.close()
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// pushEvent queues an event from a platform callback.
func (w *engineWindow) pushEvent(ev Event) {
	w.events.push(ev)
}

// setSize records the framebuffer size reported by the platform.
func (w *engineWindow) setSize(width, height int) {
	w.width = width
	w.height = height
}
