package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies the pipeline stage an entry point belongs to.
type Stage int

const (
	// StageVertex is the vertex stage, used for vertex processing in render pipelines.
	StageVertex Stage = iota

	// StageFragment is the fragment stage, used in pair with a vertex stage.
	StageFragment
)

const (
	// DefaultVertexEntryPoint is the vertex entry point every render shader must declare.
	DefaultVertexEntryPoint = "vs_main"

	// DefaultFragmentEntryPoint is the fragment entry point every render shader must declare.
	DefaultFragmentEntryPoint = "fs_main"
)

// ErrMissingEntryPoint is returned when a shader does not declare a required entry point.
var ErrMissingEntryPoint = errors.New("shader entry point not found")

// TriangleSource is the WGSL source for the plain triangle. It declares no vertex input
// struct and derives its three positions from the vertex index.
//
//go:embed assets/triangle.wgsl
var TriangleSource string

// VertexColorSource is the WGSL source for geometry read from a buffer of common.Vertex
// records: position at @location(0), color at @location(1).
//
//go:embed assets/vertex_color.wgsl
var VertexColorSource string

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation.
type shader struct {
	key                string
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string
	vertexLayouts      []wgpu.VertexBufferLayout
	module             *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for an embedded and parsed WGSL render shader. It exposes the
// shader's unique key, source code, entry points and the vertex buffer layouts its vertex
// input structs describe.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the entry point name (e.g. "fs_main")
	FragmentEntryPoint() string

	// VertexLayouts retrieves the vertex buffer layouts parsed from the shader's vertex input
	// structs, in buffer slot order. A shader that reads no vertex buffers returns nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the parsed layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the wgpu.ShaderModuleDescriptor for this shader, which is built from the NewShader function.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a new Shader from WGSL source. The source is parsed for its entry points
// and vertex input layouts; both DefaultVertexEntryPoint and DefaultFragmentEntryPoint must be
// declared.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - source: the WGSL source code
//
// Returns:
//   - Shader: a new Shader instance
//   - error: ErrMissingEntryPoint wrapped with the missing name, or nil
func NewShader(key, source string) (Shader, error) {
	s := &shader{
		key:                key,
		source:             source,
		vertexEntryPoint:   DefaultVertexEntryPoint,
		fragmentEntryPoint: DefaultFragmentEntryPoint,
	}
	if !slices.Contains(parseEntryPoints(source, StageVertex), s.vertexEntryPoint) {
		return nil, fmt.Errorf("shader %s: @vertex fn %s: %w", key, s.vertexEntryPoint, ErrMissingEntryPoint)
	}
	if !slices.Contains(parseEntryPoints(source, StageFragment), s.fragmentEntryPoint) {
		return nil, fmt.Errorf("shader %s: @fragment fn %s: %w", key, s.fragmentEntryPoint, ErrMissingEntryPoint)
	}
	s.vertexLayouts = parseVertexLayouts(source)
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
