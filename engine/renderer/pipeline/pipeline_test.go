package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func newVertexColorPipeline(t *testing.T, key string, opts ...PipelineBuilderOption) Pipeline {
	t.Helper()
	s, err := shader.NewShader("vertex_color", shader.VertexColorSource)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	return NewPipeline(key, append([]PipelineBuilderOption{WithShader(s), WithVertexLayouts(common.VertexLayout())}, opts...)...)
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("defaults")
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want Back", p.CullMode())
	}
	if p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("FrontFace() = %v, want CCW", p.FrontFace())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want TriangleList", p.Topology())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask() = %v, want All", p.WriteMask())
	}
	if !reflect.DeepEqual(p.BlendState(), ReplaceBlendState()) {
		t.Errorf("BlendState() = %+v, want replace", p.BlendState())
	}
	if p.SampleCount() != 1 {
		t.Errorf("SampleCount() = %d, want 1", p.SampleCount())
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() != nil before registration")
	}
}

func TestRenderPipelineDescriptor(t *testing.T) {
	p := newVertexColorPipeline(t, "vertex")
	desc := p.RenderPipelineDescriptor(wgpu.TextureFormatBGRA8UnormSrgb, nil, nil)

	if desc.Vertex.EntryPoint != "vs_main" || desc.Fragment.EntryPoint != "fs_main" {
		t.Errorf("entry points = %q/%q", desc.Vertex.EntryPoint, desc.Fragment.EntryPoint)
	}
	if len(desc.Vertex.Buffers) != 1 {
		t.Fatalf("len(Vertex.Buffers) = %d, want 1", len(desc.Vertex.Buffers))
	}
	buf := desc.Vertex.Buffers[0]
	if buf.ArrayStride != 24 || buf.Attributes[0].Offset != 0 || buf.Attributes[1].Offset != 12 {
		t.Errorf("vertex layout = %+v, want stride 24 offsets 0/12", buf)
	}
	if len(desc.Fragment.Targets) != 1 {
		t.Fatalf("len(Fragment.Targets) = %d, want 1", len(desc.Fragment.Targets))
	}
	target := desc.Fragment.Targets[0]
	if target.Format != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("target format = %v, want surface format", target.Format)
	}
	if target.Blend == nil || target.Blend.Color.DstFactor != wgpu.BlendFactorZero {
		t.Errorf("target blend = %+v, want replace", target.Blend)
	}
	if desc.Multisample.Count != 1 || desc.Multisample.Mask != 0xFFFFFFFF || desc.Multisample.AlphaToCoverageEnabled {
		t.Errorf("multisample = %+v", desc.Multisample)
	}
	if desc.DepthStencil != nil {
		t.Error("DepthStencil != nil, want no depth attachment")
	}
}

func TestRenderPipelineDescriptorDeterministic(t *testing.T) {
	a := newVertexColorPipeline(t, "same")
	b := newVertexColorPipeline(t, "same")

	da := a.RenderPipelineDescriptor(wgpu.TextureFormatRGBA8Unorm, nil, nil)
	db := b.RenderPipelineDescriptor(wgpu.TextureFormatRGBA8Unorm, nil, nil)
	if !reflect.DeepEqual(da, db) {
		t.Errorf("descriptors differ:\n%+v\n%+v", da, db)
	}

	again := a.RenderPipelineDescriptor(wgpu.TextureFormatRGBA8Unorm, nil, nil)
	if !reflect.DeepEqual(da, again) {
		t.Error("descriptor changed between calls")
	}

	// Mutating a returned descriptor must not leak into later ones.
	da.Vertex.Buffers[0].Attributes[0].Offset = 99
	da.Fragment.Targets[0].Blend.Color.SrcFactor = wgpu.BlendFactorSrcAlpha
	if !reflect.DeepEqual(a.RenderPipelineDescriptor(wgpu.TextureFormatRGBA8Unorm, nil, nil), db) {
		t.Error("descriptor aliases pipeline state")
	}
}

func TestRenderPipelineDescriptorOptions(t *testing.T) {
	p := newVertexColorPipeline(t, "opts",
		WithCullMode(wgpu.CullModeNone),
		WithFrontFace(wgpu.FrontFaceCW),
		WithBlendState(nil),
		WithMultisample(4, 0xF, true),
	)
	desc := p.RenderPipelineDescriptor(wgpu.TextureFormatRGBA8Unorm, nil, nil)
	if desc.Primitive.CullMode != wgpu.CullModeNone || desc.Primitive.FrontFace != wgpu.FrontFaceCW {
		t.Errorf("primitive = %+v", desc.Primitive)
	}
	if desc.Fragment.Targets[0].Blend != nil {
		t.Error("Blend != nil with blending disabled")
	}
	if desc.Multisample.Count != 4 || desc.Multisample.Mask != 0xF || !desc.Multisample.AlphaToCoverageEnabled {
		t.Errorf("multisample = %+v", desc.Multisample)
	}
}

func TestPreflightWithoutShader(t *testing.T) {
	if err := NewPipeline("empty").Preflight(); !errors.Is(err, ErrNoShader) {
		t.Errorf("Preflight() error = %v, want ErrNoShader", err)
	}
}

func TestPreflightLayoutMismatch(t *testing.T) {
	s, err := shader.NewShader("triangle", shader.TriangleSource)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	p := NewPipeline("mismatch", WithShader(s), WithVertexLayouts(common.VertexLayout()))
	if err := p.Preflight(); err == nil {
		t.Error("Preflight() error = nil for a buffer-less shader bound with a vertex layout")
	}
}
