package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/buffer_provider"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// errFrameInFlight is returned when a surface texture is acquired while the previous one is still held.
	errFrameInFlight = errors.New("previous frame surface not yet presented")

	// errNoFrame is returned when a frame step runs without an acquired surface texture.
	errNoFrame = errors.New("no surface texture acquired")
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	// Frame state, live between AcquireFrame and Present/DiscardFrame
	frameSurface  *wgpu.Texture
	frameView     *wgpu.TextureView
	frameEncoder  *wgpu.CommandEncoder
	frameCommands *wgpu.CommandBuffer
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface

	// SurfaceCapabilities queries the formats, present modes and alpha modes the surface supports
	// with the selected adapter.
	//
	// Returns:
	//   - wgpu.SurfaceCapabilities: the capabilities, formats ordered by preference
	SurfaceCapabilities() wgpu.SurfaceCapabilities

	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized, and
	// after the surface was lost or became outdated.
	//
	// Parameters:
	//   - config: the complete surface configuration to apply
	ConfigureSurface(config *wgpu.SurfaceConfiguration)

	// RegisterRenderPipeline is a high-level function that creates a render pipeline based on the provided pipeline.
	// It handles creating the shader module, an empty pipeline layout, and the render pipeline built from
	// the pipeline's descriptor against the given surface format.
	//
	// Parameters:
	//   - p: the pipeline object containing the shader and configuration for the pipeline
	//   - format: the surface texture format of the color target
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline, format wgpu.TextureFormat) error

	// InitMeshBuffers creates static vertex and index buffers from the provided data, uploads it,
	// and stores the buffers on the given BufferProvider. Empty data creates no buffer.
	//
	// Parameters:
	//   - provider: the BufferProvider to store the created vertex and index buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw Uint16 index data bytes to upload to the GPU
	//
	// Returns:
	//   - error: an error if the buffers could not be created, otherwise nil
	InitMeshBuffers(provider buffer_provider.BufferProvider, vertexData, indexData []byte) error

	// AcquireFrame acquires the next surface texture and a view onto it. At most one texture is
	// held at a time; the previous frame must be presented or discarded first.
	//
	// Returns:
	//   - error: a *SurfaceError describing the acquisition failure, otherwise nil
	AcquireFrame() error

	// RecordRenderPass creates a command encoder and records exactly one render pass into it:
	// clear to the given color, set the pipeline, bind the provider's buffers and issue one draw.
	//
	// Parameters:
	//   - p: the registered Pipeline to draw with
	//   - provider: the buffers and counts to draw, nil to draw the default vertex count without buffers
	//   - clear: the clear color of the color attachment
	//
	// Returns:
	//   - error: an error if no frame is held or the encoder could not be created
	RecordRenderPass(p pipeline.Pipeline, provider buffer_provider.BufferProvider, clear wgpu.Color) error

	// Submit finishes the recorded encoder and submits the command buffer to the queue as a single-item batch.
	//
	// Returns:
	//   - error: an error if nothing was recorded or the encoder could not be finished
	Submit() error

	// Present presents the surface to the display and releases the frame's texture and view.
	Present()

	// DiscardFrame releases every per-frame handle without presenting, so the next AcquireFrame is legal.
	DiscardFrame()

	// Release releases the device, queue, adapter, surface and instance. Must be called before the
	// window the surface was created from is destroyed.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, powerPreference PowerPreference, forceFallbackAdapter bool) (wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	w := &wgpuRendererBackendImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
		PowerPreference:      powerPreference.wgpu(),
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: requiredLimits(),
		},
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	common.Logger().Info("gpu device ready", "fallback", forceFallbackAdapter, "power_preference", int(powerPreference))
	return w, nil
}

func (b *wgpuRendererBackendImpl) SurfaceCapabilities() wgpu.SurfaceCapabilities {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.GetCapabilities(b.adapter)
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(config *wgpu.SurfaceConfiguration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.surface.Configure(b.adapter, b.device, config)
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline, format wgpu.TextureFormat) error {
	if p.Shader() == nil {
		return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), pipeline.ErrNoShader)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	module, err := b.device.CreateShaderModule(p.Shader().Module())
	if err != nil {
		return fmt.Errorf("failed to create shader module %s: %w", p.Shader().Key(), err)
	}
	defer module.Release()

	// No bind groups: a uniform bind group layout would be added here.
	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: p.PipelineKey() + " Pipeline Layout",
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout %s: %w", p.PipelineKey(), err)
	}
	defer layout.Release()

	created, err := b.device.CreateRenderPipeline(p.RenderPipelineDescriptor(format, module, layout))
	if err != nil {
		return fmt.Errorf("failed to create render pipeline %s: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created)

	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider buffer_provider.BufferProvider, vertexData, indexData []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " Vertex Buffer",
			Size:             uint64(len(vertexData)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return fmt.Errorf("failed to create vertex buffer: %w", err)
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            provider.Label() + " Index Buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return fmt.Errorf("failed to create index buffer: %w", err)
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	return nil
}

func (b *wgpuRendererBackendImpl) AcquireFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring a second texture while one is held is a validation error in wgpu-native
	// ("Surface image is already acquired").
	if b.frameSurface != nil {
		return &SurfaceError{Kind: SurfaceErrorOther, Err: errFrameInFlight}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return classifySurfaceError(err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return &SurfaceError{Kind: SurfaceErrorOther, Err: err}
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) RecordRenderPass(p pipeline.Pipeline, provider buffer_provider.BufferProvider, clear wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameView == nil {
		return errNoFrame
	}
	if p.RenderPipeline() == nil {
		return fmt.Errorf("render pipeline %s is not registered", p.PipelineKey())
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.frameEncoder = encoder

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.frameView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	pass.SetPipeline(p.RenderPipeline())

	switch {
	case provider == nil:
		pass.Draw(buffer_provider.DefaultVertexCount, 1, 0, 0)
	case provider.Indexed():
		pass.SetVertexBuffer(0, provider.VertexBuffer(), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(provider.IndexBuffer(), provider.IndexFormat(), 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(provider.IndexCount()), 1, 0, 0, 0)
	default:
		if vb := provider.VertexBuffer(); vb != nil {
			pass.SetVertexBuffer(0, vb, 0, wgpu.WholeSize)
		}
		pass.Draw(uint32(provider.VertexCount()), 1, 0, 0)
	}

	pass.End()
	pass.Release()

	return nil
}

func (b *wgpuRendererBackendImpl) Submit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return errNoFrame
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	b.frameCommands = commandBuffer

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameCommands = nil
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	// Present the acquired surface image and release local references.
	b.surface.Present()
	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) DiscardFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseFrame()
}

// releaseFrame drops every per-frame handle. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameCommands != nil {
		b.frameCommands.Release()
		b.frameCommands = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Instance() *wgpu.Instance {
	return b.instance
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}
