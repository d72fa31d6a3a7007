package engine

import (
	"github.com/Carmen-Shannon/oxy-tri/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/buffer_provider"
	"github.com/Carmen-Shannon/oxy-tri/engine/window"
)

// DefaultPipelineKey is the pipeline key rendered when WithPipelineKey is not given.
const DefaultPipelineKey = "main"

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to change its logging interval.
//
// Parameters:
//   - p: the Profiler to tick after every frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose events drive the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with. The engine releases it on exit.
//
// Parameters:
//   - r: a Renderer created for the engine's window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithPipelineKey selects the registered pipeline every frame is rendered with.
//
// Parameters:
//   - key: the pipeline key, DefaultPipelineKey by default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPipelineKey(key string) EngineBuilderOption {
	return func(e *engine) {
		e.pipelineKey = key
	}
}

// WithBufferProvider sets the frame buffers drawn every frame. The engine releases them on exit.
// Without a provider the renderer draws three vertices with no buffers bound.
//
// Parameters:
//   - provider: the BufferProvider holding the uploaded mesh
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBufferProvider(provider buffer_provider.BufferProvider) EngineBuilderOption {
	return func(e *engine) {
		e.provider = provider
	}
}

// WithUpdate registers the function called before every frame is rendered.
//
// Parameters:
//   - callback: function receiving the time since the previous frame in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdate(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.updateCallback = callback
	}
}

// WithInput registers the function window events are offered to first. Returning true consumes
// the event and skips the engine's own handling of it (close, Escape and resize).
//
// Parameters:
//   - callback: function receiving each window event
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(callback func(event window.Event) bool) EngineBuilderOption {
	return func(e *engine) {
		e.inputCallback = callback
	}
}
