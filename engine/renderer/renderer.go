package renderer

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/model"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/buffer_provider"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tri/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoSurfaceFormat is returned when the surface reports no supported texture format.
var ErrNoSurfaceFormat = errors.New("surface reports no supported formats")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// config is the surface configuration last applied; width and height are the stored size.
	config     wgpu.SurfaceConfiguration
	clearColor wgpu.Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	powerPreference      PowerPreference
	presentMode          PresentMode
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU context (adapter, device, queue and the configured surface), caches
// the registered pipelines and runs the per-frame sequence: acquire the surface texture, record
// one render pass, submit, present. It must be released before the window it renders to is closed.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by running their shader pre-flight checks,
	// creating the GPU render pipeline against the configured surface format, then caching them by
	// PipelineKey. Pipelines whose keys are already registered are skipped to avoid duplicate GPU
	// resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if a pre-flight check or pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new size in pixels. Sizes with a zero dimension
	// (e.g. a minimized window) are ignored and the stored size is left unchanged. Calling Resize
	// with the current size forces a reconfiguration.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	Resize(width, height int) bool

	// Size returns the stored surface size in pixels.
	//
	// Returns:
	//   - int: the surface width
	//   - int: the surface height
	Size() (int, int)

	// SurfaceConfiguration returns a copy of the surface configuration last applied.
	//
	// Returns:
	//   - wgpu.SurfaceConfiguration: usage, format, size, present mode and alpha mode of the surface
	SurfaceConfiguration() wgpu.SurfaceConfiguration

	// InitFrameBuffers creates the static GPU buffers for a model and stores them on the provider
	// together with the vertex and index counts used by Render. Models without indices get a vertex
	// buffer only.
	//
	// Parameters:
	//   - provider: the BufferProvider to store the created buffers on
	//   - m: the host mesh to upload
	//
	// Returns:
	//   - error: an error if the model is invalid or buffer creation fails
	InitFrameBuffers(provider buffer_provider.BufferProvider, m model.Model) error

	// Render runs one frame with the cached pipeline: acquire the surface texture, record one
	// render pass, submit and present. A lost or outdated surface is reconfigured at the stored
	// size and the frame is skipped; running out of memory is fatal; any other failure skips the
	// frame. A failure after the texture was acquired discards the frame.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - provider: the buffers to draw, nil to draw three vertices without buffers
	//
	// Returns:
	//   - FrameStatus: the outcome of the frame
	//   - error: the cause whenever the status is not FrameStatusPresented
	Render(pipelineKey string, provider buffer_provider.BufferProvider) (FrameStatus, error)

	// ClearColor returns the color the render pass clears to.
	//
	// Returns:
	//   - wgpu.Color: the clear color
	ClearColor() wgpu.Color

	// SetClearColor sets the color the render pass clears to.
	//
	// Parameters:
	//   - c: the new clear color
	SetClearColor(c wgpu.Color)

	// Release releases every registered pipeline and the GPU context.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU context for a window: instance, surface, adapter, device and queue,
// then configures the surface with its first supported format at the window's pixel size.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - window: the window whose surface is rendered to
//   - options: functional options configuring the renderer
//
// Returns:
//   - Renderer: the created renderer
//   - error: an error if any initialization step fails
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.powerPreference, r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}

	if err := r.configure(window.Width(), window.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		clearColor:    wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		presentMode:   PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// configure selects the surface format and present mode and applies the initial configuration.
func (r *renderer) configure(width, height int) error {
	capabilities := r.backend.SurfaceCapabilities()
	if len(capabilities.Formats) == 0 {
		return ErrNoSurfaceFormat
	}

	presentMode := r.presentMode.wgpu()
	if len(capabilities.PresentModes) > 0 && !slices.Contains(capabilities.PresentModes, presentMode) {
		common.Logger().Warn("present mode not supported by surface, falling back to vsync", "present_mode", presentMode)
		presentMode = wgpu.PresentModeFifo
	}

	r.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      capabilities.Formats[0],
		Width:       uint32(max(width, 0)),
		Height:      uint32(max(height, 0)),
		PresentMode: presentMode,
		AlphaMode:   wgpu.CompositeAlphaModeAuto,
	}
	if width > 0 && height > 0 {
		config := r.config
		r.backend.ConfigureSurface(&config)
	}

	common.Logger().Info("surface configured",
		"format", r.config.Format, "width", width, "height", height, "present_mode", r.config.PresentMode)
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := p.Preflight(); err != nil {
			return err
		}
		if err := r.backend.RegisterRenderPipeline(p, r.config.Format); err != nil {
			return err
		}
		r.pipelineCache[key] = p
		common.Logger().Info("render pipeline registered", "key", key, "format", r.config.Format)
	}
	return nil
}

func (r *renderer) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	r.mu.Lock()
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	config := r.config
	r.mu.Unlock()

	r.backend.ConfigureSurface(&config)
	common.Logger().Debug("surface resized", "width", width, "height", height)
	return true
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.config.Width), int(r.config.Height)
}

func (r *renderer) SurfaceConfiguration() wgpu.SurfaceConfiguration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

func (r *renderer) InitFrameBuffers(provider buffer_provider.BufferProvider, m model.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.backend.InitMeshBuffers(provider, m.VertexData(), m.IndexData()); err != nil {
		return fmt.Errorf("failed to create buffers for %s: %w", m.Name(), err)
	}
	provider.SetVertexCount(m.VertexCount())
	provider.SetIndexCount(m.IndexCount())
	return nil
}

func (r *renderer) Render(pipelineKey string, provider buffer_provider.BufferProvider) (FrameStatus, error) {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	clearColor := r.clearColor
	r.mu.Unlock()

	if !exists {
		return FrameStatusSkipped, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	if err := r.backend.AcquireFrame(); err != nil {
		se := classifySurfaceError(err)
		switch {
		case se.Recoverable():
			width, height := r.Size()
			r.Resize(width, height)
			return FrameStatusRecovered, se
		case se.Fatal():
			return FrameStatusFatal, se
		default:
			return FrameStatusSkipped, se
		}
	}

	if err := r.backend.RecordRenderPass(p, provider, clearColor); err != nil {
		r.backend.DiscardFrame()
		return FrameStatusSkipped, fmt.Errorf("failed to record render pass: %w", err)
	}
	if err := r.backend.Submit(); err != nil {
		r.backend.DiscardFrame()
		return FrameStatusSkipped, fmt.Errorf("failed to submit frame: %w", err)
	}
	r.backend.Present()

	return FrameStatusPresented, nil
}

func (r *renderer) ClearColor() wgpu.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetClearColor(c wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
