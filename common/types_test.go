package common

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestVertexLayoutMatchesRecord(t *testing.T) {
	if VertexSize != 24 {
		t.Fatalf("VertexSize = %d, want 24", VertexSize)
	}

	layout := VertexLayout()
	if layout.ArrayStride != VertexSize {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, VertexSize)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want VertexStepModeVertex", layout.StepMode)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(layout.Attributes))
	}

	want := []struct {
		offset   uint64
		location uint32
	}{
		{0, 0},
		{12, 1},
	}
	for i, w := range want {
		a := layout.Attributes[i]
		if a.Offset != w.offset || a.ShaderLocation != w.location || a.Format != wgpu.VertexFormatFloat32x3 {
			t.Errorf("Attributes[%d] = {offset %d, location %d, format %v}, want {offset %d, location %d, Float32x3}",
				i, a.Offset, a.ShaderLocation, a.Format, w.offset, w.location)
		}
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]Vertex{}); got != nil {
		t.Errorf("SliceToBytes(empty) = %v, want nil", got)
	}

	verts := []Vertex{{}, {}, {}}
	if got := len(SliceToBytes(verts)); got != 3*int(VertexSize) {
		t.Errorf("len(SliceToBytes(3 vertices)) = %d, want %d", got, 3*VertexSize)
	}

	indices := []uint16{0, 1, 2}
	if got := len(SliceToBytes(indices)); got != 6 {
		t.Errorf("len(SliceToBytes(3 uint16)) = %d, want 6", got)
	}
}

func TestRGBAColor(t *testing.T) {
	c := RGBA{0.1, 0.2, 0.3, 1.0}.Color()
	if c.R != 0.1 || c.G != 0.2 || c.B != 0.3 || c.A != 1.0 {
		t.Errorf("RGBA.Color() = %+v, want {0.1 0.2 0.3 1}", c)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "oxy"); got != "oxy" {
		t.Errorf("Coalesce = %q, want oxy", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce(0, 0) = %d, want 0", got)
	}
}
