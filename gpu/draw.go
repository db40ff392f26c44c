package gpu

import (
	_ "embed"

	"quad-canvas/scene"
	"quad-canvas/transform"
)

// QuadVertexCount is the number of vertices in the shared unit quad.
const QuadVertexCount = len(transform.UnitQuad)

// DrawCall describes one instanced draw of the unit quad.
type DrawCall struct {
	VertexCount   int
	InstanceCount int
}

// InstancedDraw returns the single draw call that renders every record in b.
func InstancedDraw(b *InstanceBuffer) DrawCall {
	return DrawCall{VertexCount: QuadVertexCount, InstanceCount: b.Len()}
}

// Batch is the run of instances [First, First+Count) submitted together.
type Batch struct {
	First int
	Count int
}

// Batches splits d for a backend that accepts at most maxInstances per
// submission. The result has ceil(InstanceCount/maxInstances) entries; a
// non-positive maxInstances means no limit.
func (d DrawCall) Batches(maxInstances int) []Batch {
	if d.InstanceCount <= 0 {
		return nil
	}
	if maxInstances <= 0 {
		maxInstances = d.InstanceCount
	}
	out := make([]Batch, 0, (d.InstanceCount+maxInstances-1)/maxInstances)
	for first := 0; first < d.InstanceCount; first += maxInstances {
		out = append(out, Batch{First: first, Count: min(maxInstances, d.InstanceCount-first)})
	}
	return out
}

// VertexStage is the per-vertex program. It reads only what the GPU
// receives, the encoded uniform and record, and mirrors the shader
// expression term by term; it must agree bit-for-bit with
// transform.ClipPosition.
func VertexStage(u CameraUniform, inst scene.Instance, corner transform.Corner) transform.NDC {
	wx := inst.Position.X + float32(corner.X*inst.Size.X)
	wy := inst.Position.Y + float32(corner.Y*inst.Size.Y)
	sx := float32((wx - u.Pan[0]) * u.Zoom)
	sy := float32((wy - u.Pan[1]) * u.Zoom)
	return transform.NDC{
		X: float32(float32(sx/u.Canvas[0])*2) - 1,
		Y: 1 - float32(float32(sy/u.Canvas[1])*2),
	}
}

// GridShaderSource is a Kage fragment shader that draws a world-aligned grid
// and the world origin from the camera uniform.
//
// Uniforms: Pan, Zoom, Canvas (see CameraUniform.KageUniforms), Spacing,
// LineColor, AxisColor (premultiplied).
//
//go:embed shaders/grid.kage
var GridShaderSource []byte

// QuadShaderSource is a Kage fragment shader for instance quads. The vertex
// color carries the straight-alpha instance color.
//
//go:embed shaders/quad.kage
var QuadShaderSource []byte
