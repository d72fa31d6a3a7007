package buffer_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultVertexCount is the number of vertices drawn when no vertex buffer is bound.
// The plain triangle shader derives its three positions from the vertex index.
const DefaultVertexCount = 3

// bufferProvider is the unexported implementation of BufferProvider.
type bufferProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed.
	// They are populated by the Renderer during initialization, not by user-creation.

	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this provider, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer

	// vertexCount is the number of vertices for non-indexed draw calls.
	vertexCount int
	// indexCount is the number of indices for draw calls, used by the Renderer to issue drawIndexed calls for this provider.
	indexCount int
}

// BufferProvider defines the interface for the static frame buffers bound during a render pass.
// A provider carries zero, one or two GPU buffers together with the counts needed to issue
// exactly one draw call per frame.
//
// Usage pattern:
//  1. Caller creates a BufferProvider with a label
//  2. Renderer.InitFrameBuffers(provider, model) uploads vertex/index data and stores the buffers
//  3. Renderer.Render binds the buffers (if any) and draws VertexCount or IndexCount elements
//  4. The owner calls Release at shutdown, before the renderer is released
type BufferProvider interface {
	// Release releases any GPU buffers held by this provider.
	// Counts are kept so a released provider still reports what it used to draw.
	Release()

	// Label returns the debug label for this provider.
	// Used for debugging and profiling purposes.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// VertexBuffer returns the GPU vertex buffer, or nil if none is bound.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if none is bound.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexFormat returns the element format of the index buffer.
	//
	// Returns:
	//   - wgpu.IndexFormat: always wgpu.IndexFormatUint16
	IndexFormat() wgpu.IndexFormat

	// VertexCount returns the number of vertices for non-indexed draw calls.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices for indexed draw calls.
	//
	// Returns:
	//   - int: the index count, zero when the provider draws without indices
	IndexCount() int

	// Indexed reports whether the draw call should use the index buffer.
	//
	// Returns:
	//   - bool: true if an index buffer is bound and the index count is non-zero
	Indexed() bool

	// SetVertexBuffer stores the GPU vertex buffer after creation by InitFrameBuffers.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer after creation by InitFrameBuffers.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetVertexCount sets the number of vertices for non-indexed draw calls.
	//
	// Parameters:
	//   - count: the vertex count
	SetVertexCount(count int)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

// Compile-time check that bufferProvider implements BufferProvider
var _ BufferProvider = &bufferProvider{}

// NewBufferProvider creates a new BufferProvider with the provided options.
// Without options the provider binds no buffers and draws DefaultVertexCount vertices.
//
// Parameters:
//   - label: the debug label for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BufferProvider: a new instance of BufferProvider configured with the provided options
func NewBufferProvider(label string, options ...BufferProviderOption) BufferProvider {
	p := &bufferProvider{
		label:       label,
		vertexCount: DefaultVertexCount,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bufferProvider) Label() string {
	return p.label
}

func (p *bufferProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bufferProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bufferProvider) IndexFormat() wgpu.IndexFormat {
	return wgpu.IndexFormatUint16
}

func (p *bufferProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bufferProvider) IndexCount() int {
	return p.indexCount
}

func (p *bufferProvider) Indexed() bool {
	return p.indexBuffer != nil && p.indexCount > 0
}

func (p *bufferProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bufferProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bufferProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bufferProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bufferProvider) Release() {
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
