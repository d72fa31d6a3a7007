package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/buffer_provider"
	"github.com/Carmen-Shannon/oxy-tri/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine has no window")

	// ErrNoRenderer is returned by Run when the engine was built without a renderer.
	ErrNoRenderer = errors.New("engine has no renderer")
)

// ExitReason records why the event loop stopped.
type ExitReason int

const (
	// ExitNone means the loop has not exited.
	ExitNone ExitReason = iota

	// ExitCloseRequested means the user closed the window.
	ExitCloseRequested

	// ExitEscape means the Escape key was pressed.
	ExitEscape

	// ExitFatal means a frame failed in a way rendering cannot recover from.
	ExitFatal

	// ExitQuit means Quit was called.
	ExitQuit

	// ExitWindowClosed means the window stopped producing events.
	ExitWindowClosed
)

func (r ExitReason) String() string {
	switch r {
	case ExitNone:
		return "none"
	case ExitCloseRequested:
		return "close requested"
	case ExitEscape:
		return "escape"
	case ExitFatal:
		return "fatal"
	case ExitQuit:
		return "quit"
	case ExitWindowClosed:
		return "window closed"
	default:
		return fmt.Sprintf("ExitReason(%d)", int(r))
	}
}

// engine implements the Engine interface.
// Drives the renderer from the window's event stream on the calling goroutine.
type engine struct {
	running bool
	reason  ExitReason

	window   window.Window
	renderer renderer.Renderer

	pipelineKey string
	provider    buffer_provider.BufferProvider

	profiler         *profiler.Profiler
	profilingEnabled bool

	updateCallback func(deltaTime float32)
	inputCallback  func(event window.Event) bool
	lastRedraw     time.Time
}

// Engine is the main entry point for the engine.
// It owns the window, the renderer and the frame buffers and reacts to window events until exit.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// Run pulls events from the window and handles them until the loop exits, then releases the
	// frame buffers and the renderer and closes the window, in that order. It must be called from
	// the goroutine the window was created on.
	//
	// Returns:
	//   - ExitReason: why the loop stopped
	//   - error: ErrNoWindow or ErrNoRenderer if the engine cannot run
	Run() (ExitReason, error)

	// Quit stops the event loop after the event currently being handled.
	// Safe to call multiple times; the first exit reason is kept.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, buffers, hooks, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:    profiler.NewProfiler(),
		pipelineKey: DefaultPipelineKey,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() (ExitReason, error) {
	if e.window == nil {
		return ExitNone, ErrNoWindow
	}
	if e.renderer == nil {
		return ExitNone, ErrNoRenderer
	}
	defer e.shutdown()

	e.running = true
	e.reason = ExitNone
	e.lastRedraw = time.Now()

	for e.running {
		event, ok := e.window.PollEvent()
		if !ok {
			e.exit(ExitWindowClosed)
			break
		}
		e.handleEvent(event)
	}

	common.Logger().Info("event loop exited", "reason", e.reason)
	return e.reason, nil
}

func (e *engine) Quit() {
	e.exit(ExitQuit)
}

// exit stops the loop, keeping the first reason given.
func (e *engine) exit(reason ExitReason) {
	if e.reason == ExitNone {
		e.reason = reason
	}
	e.running = false
}

// handleEvent is the event state machine. Redraw bookkeeping is handled by the engine itself;
// every other event is offered to the input hook before the default handling.
func (e *engine) handleEvent(event window.Event) {
	switch event.(type) {
	case window.MainEventsCleared:
		e.window.RequestRedraw()
		return
	case window.RedrawRequested:
		e.redraw()
		return
	}

	if e.inputCallback != nil && e.inputCallback(event) {
		return
	}

	switch ev := event.(type) {
	case window.CloseRequested:
		e.exit(ExitCloseRequested)
	case window.KeyPressed:
		if ev.Key == common.KeyEsc {
			e.exit(ExitEscape)
		}
	case window.Resized:
		e.renderer.Resize(ev.Width, ev.Height)
	case window.ScaleFactorChanged:
		e.renderer.Resize(ev.Width, ev.Height)
	default:
	}
}

// redraw runs the update hook and renders one frame.
func (e *engine) redraw() {
	now := time.Now()
	dt := float32(now.Sub(e.lastRedraw).Seconds())
	e.lastRedraw = now

	if e.updateCallback != nil {
		e.updateCallback(dt)
	}

	status, err := e.renderer.Render(e.pipelineKey, e.provider)
	switch status {
	case renderer.FrameStatusSkipped:
		common.Logger().Warn("frame skipped", "error", err)
	case renderer.FrameStatusRecovered:
		common.Logger().Info("surface reconfigured", "error", err)
	case renderer.FrameStatusFatal:
		common.Logger().Error("rendering cannot continue", "error", err)
		e.exit(ExitFatal)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(status)
	}
}

// shutdown releases GPU resources before the window that backs the surface is destroyed.
func (e *engine) shutdown() {
	if e.provider != nil {
		e.provider.Release()
	}
	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		common.Logger().Error("failed to close window", "error", err)
	}
}
