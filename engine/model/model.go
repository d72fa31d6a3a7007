package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tri/common"
)

var (
	// ErrEmptyMesh is returned by Validate when a model has no vertices.
	ErrEmptyMesh = errors.New("model has no vertices")

	// ErrIndexOutOfRange is returned by Validate when an index refers past the vertex list.
	ErrIndexOutOfRange = errors.New("model index out of range")

	// ErrIndexCount is returned by Validate when the index count is not a multiple of three.
	ErrIndexCount = errors.New("model index count is not a multiple of 3")
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	vertices []common.Vertex
	indices  []uint16
}

// Model defines the interface for a host-side mesh.
// A Model holds the vertex and optional index arrays that are uploaded once into static GPU
// buffers at startup. It never changes after construction.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves the host vertex array.
	//
	// Returns:
	//   - []common.Vertex: the vertices in draw order
	Vertices() []common.Vertex

	// Indices retrieves the host index array, or nil for non-indexed models.
	//
	// Returns:
	//   - []uint16: the triangle list indices
	Indices() []uint16

	// Indexed reports whether the model is drawn with an index buffer.
	//
	// Returns:
	//   - bool: true if the model has indices
	Indexed() bool

	// VertexCount returns the number of vertices in the model.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices in the model.
	//
	// Returns:
	//   - int: the index count, zero for non-indexed models
	IndexCount() int

	// VertexData returns the raw vertex bytes in common.Vertex layout.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw Uint16 index bytes, zero padded to a 4 byte boundary
	// so the slice can be written to a GPU buffer directly.
	//
	// Returns:
	//   - []byte: the index data, or nil for non-indexed models
	IndexData() []byte

	// Validate checks that the model can be drawn: it has vertices, its index count is a
	// multiple of three and every index refers to an existing vertex.
	//
	// Returns:
	//   - error: ErrEmptyMesh, ErrIndexCount or ErrIndexOutOfRange wrapped with detail, or nil
	Validate() error
}

var _ Model = &model{}

// NewModel creates a new Model with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the newly created Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []common.Vertex {
	return m.vertices
}

func (m *model) Indices() []uint16 {
	return m.indices
}

func (m *model) Indexed() bool {
	return len(m.indices) > 0
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) VertexData() []byte {
	if len(m.vertices) == 0 {
		return nil
	}
	return common.SliceToBytes(m.vertices)
}

func (m *model) IndexData() []byte {
	if len(m.indices) == 0 {
		return nil
	}
	indices := m.indices
	if len(indices)%2 != 0 {
		indices = append(append(make([]uint16, 0, len(indices)+1), indices...), 0)
	}
	return common.SliceToBytes(indices)
}

func (m *model) Validate() error {
	if len(m.vertices) == 0 {
		return fmt.Errorf("%s: %w", m.name, ErrEmptyMesh)
	}
	if len(m.indices)%3 != 0 {
		return fmt.Errorf("%s: %d indices: %w", m.name, len(m.indices), ErrIndexCount)
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("%s: index %d = %d with %d vertices: %w", m.name, i, idx, len(m.vertices), ErrIndexOutOfRange)
		}
	}
	return nil
}
