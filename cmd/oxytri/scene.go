package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/config"
	"github.com/Carmen-Shannon/oxy-tri/engine/model"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer/shader"
)

// scene is the pipeline and optional mesh drawn for one mesh variant.
type scene struct {
	pipeline pipeline.Pipeline
	model    model.Model
}

// newScene builds the pipeline and mesh for a variant. The triangle variant has no mesh.
func newScene(variant config.MeshVariant) (scene, error) {
	switch variant {
	case config.MeshVariantTriangle:
		s, err := shader.NewShader("triangle", shader.TriangleSource)
		if err != nil {
			return scene{}, err
		}
		return scene{pipeline: pipeline.NewPipeline("triangle", pipeline.WithShader(s))}, nil

	case config.MeshVariantVertex, config.MeshVariantIndexed:
		s, err := shader.NewShader("vertex_color", shader.VertexColorSource)
		if err != nil {
			return scene{}, err
		}
		m := model.Triangle()
		if variant == config.MeshVariantIndexed {
			m = model.Pentagon()
		}
		p := pipeline.NewPipeline(string(variant),
			pipeline.WithShader(s),
			pipeline.WithVertexLayouts(common.VertexLayout()),
		)
		return scene{pipeline: p, model: m}, nil

	default:
		return scene{}, fmt.Errorf("%w: %q", config.ErrInvalidVariant, variant)
	}
}
