package window

// WindowBuilderOption is a functional option applied to the window before the platform creates it.
// Options left unset keep the defaults from NewWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the caption shown by the window manager.
//
// Parameters:
//   - title: the caption text
//
// Returns:
//   - WindowBuilderOption: option that sets the title
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMaxWidth caps how wide the user can drag the window.
//
// Parameters:
//   - maxWidth: upper width bound in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the width cap
func WithMaxWidth(maxWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = maxWidth
	}
}

// WithMaxHeight caps how tall the user can drag the window.
//
// Parameters:
//   - maxHeight: upper height bound in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the height cap
func WithMaxHeight(maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxHeight = maxHeight
	}
}

// WithMinWidth keeps the window at least this wide. It does not stop minimizing, which still
// yields a zero-size framebuffer.
//
// Parameters:
//   - minWidth: lower width bound in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the width floor
func WithMinWidth(minWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
	}
}

// WithMinHeight keeps the window at least this tall.
//
// Parameters:
//   - minHeight: lower height bound in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the height floor
func WithMinHeight(minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minHeight = minHeight
	}
}

// WithWidth sets the requested width at creation. Width() reports the framebuffer width,
// which can differ on high-DPI displays.
//
// Parameters:
//   - width: requested width in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the starting width
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the requested height at creation.
//
// Parameters:
//   - height: requested height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option that sets the starting height
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// withPlatform replaces the GLFW backed platform. Used by tests to drive the event pump
// without a display.
func withPlatform(p platformWindow) WindowBuilderOption {
	return func(w *engineWindow) {
		w.platform = p
	}
}
