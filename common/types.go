// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is the host-side layout of a single vertex as consumed by the vertex shader.
// The field order and sizes must match the WGSL vertex input struct exactly: position at
// @location(0) and color at @location(1), both vec3<f32>.
type Vertex struct {
	// Position is the clip-space position of the vertex.
	Position [3]float32
	// Color is the linear RGB color of the vertex, interpolated across the primitive.
	Color [3]float32
}

const (
	// VertexSize is the byte size of one Vertex record and therefore the vertex buffer stride.
	VertexSize = uint64(unsafe.Sizeof(Vertex{}))

	// vertexColorOffset is the byte offset of Vertex.Color, directly after the three position floats.
	vertexColorOffset = uint64(unsafe.Sizeof([3]float32{}))
)

// VertexLayout returns the vertex buffer layout describing a tightly packed slice of Vertex records.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride of one Vertex, per-vertex step mode, position and color attributes
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         vertexColorOffset,
				ShaderLocation: 1,
			},
		},
	}
}

// RGBA is a normalized color used for clear values and configuration.
type RGBA [4]float64

// Color converts the RGBA value into a wgpu.Color.
//
// Returns:
//   - wgpu.Color: the equivalent WebGPU color
func (c RGBA) Color() wgpu.Color {
	return wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
