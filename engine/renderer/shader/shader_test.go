package shader

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestEmbeddedShaders(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantLayouts int
	}{
		{"triangle", TriangleSource, 0},
		{"vertex_color", VertexColorSource, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewShader(tt.name, tt.source)
			if err != nil {
				t.Fatalf("NewShader() error = %v", err)
			}
			if s.VertexEntryPoint() != "vs_main" || s.FragmentEntryPoint() != "fs_main" {
				t.Errorf("entry points = %q/%q", s.VertexEntryPoint(), s.FragmentEntryPoint())
			}
			if got := len(s.VertexLayouts()); got != tt.wantLayouts {
				t.Errorf("len(VertexLayouts()) = %d, want %d", got, tt.wantLayouts)
			}
			if s.Module() == nil || s.Module().WGSLDescriptor.Code != tt.source {
				t.Error("Module() does not carry the source")
			}
			if s.Module().Label != tt.name {
				t.Errorf("Module().Label = %q, want %q", s.Module().Label, tt.name)
			}
		})
	}
}

func TestVertexColorLayoutMatchesVertex(t *testing.T) {
	s, err := NewShader("vertex_color", VertexColorSource)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if err := CheckVertexLayouts(s, []wgpu.VertexBufferLayout{common.VertexLayout()}); err != nil {
		t.Errorf("CheckVertexLayouts() error = %v", err)
	}
}

func TestTriangleTakesNoBuffers(t *testing.T) {
	s, err := NewShader("triangle", TriangleSource)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if err := CheckVertexLayouts(s, nil); err != nil {
		t.Errorf("CheckVertexLayouts(nil) error = %v", err)
	}
	err = CheckVertexLayouts(s, []wgpu.VertexBufferLayout{common.VertexLayout()})
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Errorf("CheckVertexLayouts(vertex) error = %v, want ErrLayoutMismatch", err)
	}
}

func TestMissingEntryPoints(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"no vertex", `@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`},
		{"no fragment", `@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }`},
		{"renamed vertex", `
@vertex fn main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }
@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`},
		{"commented out", `
// @vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }
@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShader(tt.name, tt.source)
			if !errors.Is(err, ErrMissingEntryPoint) {
				t.Errorf("NewShader() error = %v, want ErrMissingEntryPoint", err)
			}
		})
	}
}

func TestCheckVertexLayoutsMismatch(t *testing.T) {
	s, err := NewShader("vertex_color", VertexColorSource)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}

	swapped := common.VertexLayout()
	swapped.Attributes = []wgpu.VertexAttribute{swapped.Attributes[1], swapped.Attributes[0]}

	wideStride := common.VertexLayout()
	wideStride.ArrayStride = 32

	wrongFormat := common.VertexLayout()
	wrongFormat.Attributes = []wgpu.VertexAttribute{
		wrongFormat.Attributes[0],
		{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
	}

	instanced := common.VertexLayout()
	instanced.StepMode = wgpu.VertexStepModeInstance

	tests := []struct {
		name   string
		layout wgpu.VertexBufferLayout
	}{
		{"swapped attributes", swapped},
		{"stride", wideStride},
		{"format", wrongFormat},
		{"step mode", instanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVertexLayouts(s, []wgpu.VertexBufferLayout{tt.layout})
			if !errors.Is(err, ErrLayoutMismatch) {
				t.Errorf("CheckVertexLayouts() error = %v, want ErrLayoutMismatch", err)
			}
		})
	}
}

func TestCompileRejectsBrokenSource(t *testing.T) {
	broken := `
@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0) }
@fragment fn fs_main() -> @location(0) vec4<f32> { return undefined_value; }
`
	s, err := NewShader("broken", broken)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	if err := Compile(s); !errors.Is(err, ErrCompile) {
		t.Errorf("Compile() error = %v, want ErrCompile", err)
	}
	if err := Preflight(s, nil); !errors.Is(err, ErrCompile) {
		t.Errorf("Preflight() error = %v, want ErrCompile", err)
	}
}
