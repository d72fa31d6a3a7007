package model

import "github.com/Carmen-Shannon/oxy-tri/common"

// Triangle returns a single red/green/blue triangle drawn without an index buffer.
func Triangle() Model {
	return NewModel(
		WithName("triangle"),
		WithVertices([]common.Vertex{
			{Position: [3]float32{0.0, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
			{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
			{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
		}),
	)
}

// Pentagon returns a five vertex polygon drawn as three indexed triangles.
// Vertices are wound counter-clockwise so back-face culling keeps every triangle.
func Pentagon() Model {
	return NewModel(
		WithName("pentagon"),
		WithVertices([]common.Vertex{
			{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
			{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
			{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
			{Position: [3]float32{0.35966998, -0.3473291, 0.0}, Color: [3]float32{0.0, 1.0, 1.0}},
			{Position: [3]float32{0.44147372, 0.2347359, 0.0}, Color: [3]float32{1.0, 0.0, 1.0}},
		}),
		WithIndices([]uint16{
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
		}),
	)
}
