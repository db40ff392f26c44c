package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"quad-canvas/gpu"
	"quad-canvas/loop"
	"quad-canvas/scene"
	"quad-canvas/transform"
)

// instancesPerDraw keeps each DrawTrianglesShader call within ebiten's vertex
// limit and uint16 indices.
var instancesPerDraw = min(ebiten.MaxVertexCount, 1<<16) / gpu.QuadVertexCount

// QuadRenderer draws loop frames onto the ebiten screen: the grid as one
// full-screen Kage pass, then every instance through the quad shader.
type QuadRenderer struct {
	grid *ebiten.Shader
	quad *ebiten.Shader

	background scene.Color
	gridExtra  map[string]any

	target    *ebiten.Image
	instances gpu.InstanceBuffer
	vertices  []ebiten.Vertex
	indices   []uint16
	draws     int
}

func NewQuadRenderer(background scene.Color, spacing float32, line, axis scene.Color) (*QuadRenderer, error) {
	grid, err := ebiten.NewShader(gpu.GridShaderSource)
	if err != nil {
		return nil, fmt.Errorf("grid shader: %w", err)
	}
	quad, err := ebiten.NewShader(gpu.QuadShaderSource)
	if err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}

	lp, ap := line.Premultiplied(), axis.Premultiplied()
	r := &QuadRenderer{
		grid:       grid,
		quad:       quad,
		background: background,
		gridExtra: map[string]any{
			"Spacing":   spacing,
			"LineColor": lp[:],
			"AxisColor": ap[:],
		},
	}
	r.indices = make([]uint16, 0, instancesPerDraw*len(transform.QuadIndices))
	for i := 0; i < instancesPerDraw; i++ {
		base := uint16(i * gpu.QuadVertexCount)
		for _, idx := range transform.QuadIndices {
			r.indices = append(r.indices, base+idx)
		}
	}
	return r, nil
}

// SetTarget sets the image the next Render draws onto.
func (r *QuadRenderer) SetTarget(screen *ebiten.Image) { r.target = screen }

// Draws returns the number of triangle batches issued by the last frame.
func (r *QuadRenderer) Draws() int { return r.draws }

func (r *QuadRenderer) Render(f loop.Frame) error {
	if r.target == nil {
		return fmt.Errorf("renderer: no target")
	}
	u, err := gpu.NewCameraUniform(f.View, f.Canvas)
	if err != nil {
		return err
	}

	r.target.Fill(r.background.NRGBA())
	w, h := r.target.Bounds().Dx(), r.target.Bounds().Dy()
	r.target.DrawRectShader(w, h, r.grid, &ebiten.DrawRectShaderOptions{
		Uniforms: u.KageUniforms(r.gridExtra),
	})

	if r.instances.Upload(f.Scene) {
		r.vertices = make([]ebiten.Vertex, 0, r.instances.Len()*gpu.QuadVertexCount)
	}
	dc := gpu.InstancedDraw(&r.instances)
	r.vertices = r.vertices[:0]
	size := u.Size()
	for i := 0; i < dc.InstanceCount; i++ {
		inst := r.instances.At(i)
		for k := 0; k < dc.VertexCount; k++ {
			p := transform.NDCToScreen(gpu.VertexStage(u, inst, transform.UnitQuad[k]), size)
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   p.X,
				DstY:   p.Y,
				ColorR: inst.Color[0],
				ColorG: inst.Color[1],
				ColorB: inst.Color[2],
				ColorA: inst.Color[3],
			})
		}
	}

	batches := dc.Batches(instancesPerDraw)
	op := &ebiten.DrawTrianglesShaderOptions{}
	for _, b := range batches {
		vs := r.vertices[b.First*dc.VertexCount : (b.First+b.Count)*dc.VertexCount]
		r.target.DrawTrianglesShader(vs, r.indices[:b.Count*len(transform.QuadIndices)], r.quad, op)
	}
	r.draws = len(batches)
	return nil
}
