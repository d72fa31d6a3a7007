package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoShader is returned when a pipeline is used without a shader.
var ErrNoShader = errors.New("pipeline has no shader")

// ReplaceBlendState writes the fragment color straight to the target: source factor One,
// destination factor Zero, operation Add, for both color and alpha.
func ReplaceBlendState() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// pipeline is the implementation of the Pipeline interface.
// It holds the immutable render configuration and, once registered, the created WebGPU pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// shader holds both the vertex and fragment entry points; it is required before registration.
	shader shader.Shader

	// vertexLayouts are the vertex buffer layouts bound at slots 0..n, empty when the shader reads no buffers.
	vertexLayouts []wgpu.VertexBufferLayout

	// renderPipeline is the created render pipeline, nil until registered with the Renderer
	renderPipeline *wgpu.RenderPipeline

	// The following properties are used to configure the pipeline during creation and can be toggled/set with the builder options.

	cullMode        wgpu.CullMode
	topology        wgpu.PrimitiveTopology
	frontFace       wgpu.FrontFace
	writeMask       wgpu.ColorWriteMask
	blendState      *wgpu.BlendState
	sampleCount     uint32
	sampleMask      uint32
	alphaToCoverage bool
}

// Pipeline defines the interface for a GPU render pipeline configuration. It holds the shader,
// the vertex buffer layouts and every fixed-function setting needed to build a
// wgpu.RenderPipelineDescriptor against a surface format. The configuration never changes after
// construction; the created *wgpu.RenderPipeline is attached once by the Renderer.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader providing the vertex and fragment entry points, or nil if not set.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts bound by this pipeline in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts, nil for buffer-less drawing
	VertexLayouts() []wgpu.VertexBufferLayout

	// RenderPipeline returns the created render pipeline, or nil if the pipeline has not been registered.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying pipeline object
	RenderPipeline() *wgpu.RenderPipeline

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for the color target.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SampleCount returns the multisample count of the color target.
	//
	// Returns:
	//   - uint32: the sample count, 1 when multisampling is off
	SampleCount() uint32

	// Preflight runs the CPU-side shader checks for this pipeline: the offline compile and the
	// comparison of the shader's vertex inputs with VertexLayouts.
	//
	// Returns:
	//   - error: ErrNoShader, or the first failing shader check
	Preflight() error

	// RenderPipelineDescriptor builds the descriptor used to create the GPU pipeline. The
	// result depends only on the pipeline configuration and the arguments, so two pipelines
	// built with the same options produce deep-equal descriptors.
	//
	// Parameters:
	//   - format: the surface texture format of the single color target
	//   - module: the compiled shader module providing both entry points
	//   - layout: the pipeline layout, empty for this pipeline
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor for device.CreateRenderPipeline
	RenderPipelineDescriptor(format wgpu.TextureFormat, module *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the created render pipeline, if any.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline. Defaults are a triangle list
// with counter-clockwise front faces, back-face culling, replace blending, all color channels
// written and no multisampling.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		cullMode:    wgpu.CullModeBack,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
		blendState:  ReplaceBlendState(),
		sampleCount: 1,
		sampleMask:  0xFFFFFFFF,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) Preflight() error {
	if p.shader == nil {
		return fmt.Errorf("pipeline %s: %w", p.pipelineKey, ErrNoShader)
	}
	if err := shader.Preflight(p.shader, p.vertexLayouts); err != nil {
		return fmt.Errorf("pipeline %s: %w", p.pipelineKey, err)
	}
	return nil
}

func (p *pipeline) RenderPipelineDescriptor(format wgpu.TextureFormat, module *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	vertexEntry, fragmentEntry := shader.DefaultVertexEntryPoint, shader.DefaultFragmentEntryPoint
	if p.shader != nil {
		vertexEntry, fragmentEntry = p.shader.VertexEntryPoint(), p.shader.FragmentEntryPoint()
	}

	// Copy the mutable parts so the descriptor never aliases pipeline state.
	buffers := make([]wgpu.VertexBufferLayout, len(p.vertexLayouts))
	for i, l := range p.vertexLayouts {
		l.Attributes = append([]wgpu.VertexAttribute(nil), l.Attributes...)
		buffers[i] = l
	}
	var blend *wgpu.BlendState
	if p.blendState != nil {
		b := *p.blendState
		blend = &b
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  p.pipelineKey + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     blend,
					WriteMask: p.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  p.sampleCount,
			Mask:                   p.sampleMask,
			AlphaToCoverageEnabled: p.alphaToCoverage,
		},
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
