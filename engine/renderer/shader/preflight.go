package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

var (
	// ErrCompile is returned when the WGSL source does not compile.
	ErrCompile = errors.New("shader does not compile")

	// ErrLayoutMismatch is returned when the vertex layouts a shader declares differ from the
	// layouts the pipeline binds.
	ErrLayoutMismatch = errors.New("vertex layout mismatch")
)

// Compile compiles the shader source offline with naga, so a broken WGSL blob is reported
// with a diagnostic before any GPU object is created.
//
// Parameters:
//   - s: the shader to compile
//
// Returns:
//   - error: ErrCompile wrapping the compiler diagnostic, or nil
func Compile(s Shader) error {
	if _, err := naga.Compile(s.Source()); err != nil {
		return fmt.Errorf("shader %s: %w: %w", s.Key(), ErrCompile, err)
	}
	return nil
}

// CheckVertexLayouts compares the vertex input layouts parsed from the shader with the
// layouts the pipeline binds. Buffer count, stride, step mode and each attribute's format,
// offset and location must match.
//
// Parameters:
//   - s: the shader whose parsed layouts are checked
//   - declared: the vertex buffer layouts the pipeline binds, in slot order
//
// Returns:
//   - error: ErrLayoutMismatch wrapped with the first difference, or nil
func CheckVertexLayouts(s Shader, declared []wgpu.VertexBufferLayout) error {
	parsed := s.VertexLayouts()
	if len(parsed) != len(declared) {
		return fmt.Errorf("shader %s: %d vertex buffers in source, %d bound: %w", s.Key(), len(parsed), len(declared), ErrLayoutMismatch)
	}
	for slot := range parsed {
		if err := compareLayout(parsed[slot], declared[slot]); err != nil {
			return fmt.Errorf("shader %s: slot %d: %s: %w", s.Key(), slot, err, ErrLayoutMismatch)
		}
	}
	return nil
}

// Preflight runs every CPU-side check for a shader bound with the given vertex layouts:
// the offline compile followed by the layout comparison.
//
// Parameters:
//   - s: the shader to check
//   - declared: the vertex buffer layouts the pipeline binds
//
// Returns:
//   - error: the first failing check, or nil
func Preflight(s Shader, declared []wgpu.VertexBufferLayout) error {
	if err := Compile(s); err != nil {
		return err
	}
	return CheckVertexLayouts(s, declared)
}

func compareLayout(parsed, declared wgpu.VertexBufferLayout) error {
	if parsed.ArrayStride != declared.ArrayStride {
		return fmt.Errorf("stride %d, bound %d", parsed.ArrayStride, declared.ArrayStride)
	}
	if parsed.StepMode != declared.StepMode {
		return fmt.Errorf("step mode %v, bound %v", parsed.StepMode, declared.StepMode)
	}
	if len(parsed.Attributes) != len(declared.Attributes) {
		return fmt.Errorf("%d attributes, bound %d", len(parsed.Attributes), len(declared.Attributes))
	}
	for i, a := range parsed.Attributes {
		b := declared.Attributes[i]
		if a.ShaderLocation != b.ShaderLocation || a.Offset != b.Offset || a.Format != b.Format {
			return fmt.Errorf("attribute %d is @location(%d) %v at %d, bound @location(%d) %v at %d",
				i, a.ShaderLocation, a.Format, a.Offset, b.ShaderLocation, b.Format, b.Offset)
		}
	}
	return nil
}
