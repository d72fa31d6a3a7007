package buffer_provider

import "github.com/cogentcore/webgpu/wgpu"

// BufferProviderOption is a functional option used to configure a BufferProvider during construction.
type BufferProviderOption func(*bufferProvider)

// WithVertexBuffer sets the vertex buffer for this provider.
//
// Parameters:
//   - buf: the vertex buffer to bind at slot 0
//
// Returns:
//   - BufferProviderOption: a function that sets the vertex buffer for this provider
func WithVertexBuffer(buf *wgpu.Buffer) BufferProviderOption {
	return func(p *bufferProvider) {
		p.vertexBuffer = buf
	}
}

// WithIndexBuffer sets the Uint16 index buffer for this provider.
//
// Parameters:
//   - buf: the index buffer to bind
//
// Returns:
//   - BufferProviderOption: a function that sets the index buffer for this provider
func WithIndexBuffer(buf *wgpu.Buffer) BufferProviderOption {
	return func(p *bufferProvider) {
		p.indexBuffer = buf
	}
}

// WithVertexCount sets the number of vertices drawn by non-indexed draw calls.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - BufferProviderOption: a function that sets the vertex count for this provider
func WithVertexCount(count int) BufferProviderOption {
	return func(p *bufferProvider) {
		p.vertexCount = count
	}
}

// WithIndexCount sets the number of indices drawn by indexed draw calls.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BufferProviderOption: a function that sets the index count for this provider
func WithIndexCount(count int) BufferProviderOption {
	return func(p *bufferProvider) {
		p.indexCount = count
	}
}
