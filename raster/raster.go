// Package raster is a CPU renderer for loop frames. It consumes the same
// encoded uniform and instance records as the GPU path and runs them through
// gpu.VertexStage, so its output can be compared against the window.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"quad-canvas/canvas"
	"quad-canvas/gpu"
	"quad-canvas/loop"
	"quad-canvas/scene"
	"quad-canvas/transform"
)

// Options controls what is drawn behind the instances.
type Options struct {
	Background  color.Color
	GridSpacing float32 // world units; 0 disables the grid
	GridColor   color.Color
	AxisColor   color.Color
}

// DefaultOptions matches the window's clear color and grid.
var DefaultOptions = Options{
	Background:  color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1f, A: 0xff},
	GridSpacing: 50,
	GridColor:   color.NRGBA{R: 0x2c, G: 0x2c, B: 0x34, A: 0xff},
	AxisColor:   colornames.Slategray,
}

// Renderer implements loop.Renderer into an in-memory image.
type Renderer struct {
	opts      Options
	img       *image.RGBA
	uniform   []byte
	instances gpu.InstanceBuffer
	records   []scene.Instance
	ras       vector.Rasterizer
	drawn     int
	fills     int
}

// New returns a renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Image returns the last rendered frame, or nil before the first frame.
func (r *Renderer) Image() *image.RGBA { return r.img }

// Drawn returns the number of instances that touched the last frame.
func (r *Renderer) Drawn() int { return r.drawn }

// Fills returns the number of rasterizer passes the last frame took.
// Consecutive opaque instances of one color share a pass.
func (r *Renderer) Fills() int { return r.fills }

// Render draws f.
func (r *Renderer) Render(f loop.Frame) error {
	u, err := gpu.NewCameraUniform(f.View, f.Canvas)
	if err != nil {
		return err
	}
	r.uniform = u.AppendBinary(r.uniform[:0])
	// Read back exactly what a GPU would see.
	u, err = gpu.UnmarshalCameraUniform(r.uniform)
	if err != nil {
		return err
	}

	w, h := int(math32.Ceil(f.Canvas.Width)), int(math32.Ceil(f.Canvas.Height))
	if r.img == nil || r.img.Bounds().Dx() != w || r.img.Bounds().Dy() != h {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)
	r.drawGrid(u.View(), f.Canvas)

	if r.instances.Upload(f.Scene) {
		if r.records, err = gpu.DecodeInstances(r.instances.Bytes()); err != nil {
			return err
		}
	}
	r.drawInstances(u, gpu.InstancedDraw(&r.instances))
	return nil
}

func (r *Renderer) drawGrid(v canvas.View, size transform.Size) {
	if r.opts.GridSpacing <= 0 {
		return
	}
	bounds := r.img.Bounds()
	line := image.NewUniform(r.opts.GridColor)
	xs, ys := canvas.GridLines(v, size.Width, size.Height, r.opts.GridSpacing)
	for _, x := range xs {
		draw.Draw(r.img, image.Rect(int(x), 0, int(x)+1, bounds.Dy()).Intersect(bounds), line, image.Point{}, draw.Over)
	}
	for _, y := range ys {
		draw.Draw(r.img, image.Rect(0, int(y), bounds.Dx(), int(y)+1).Intersect(bounds), line, image.Point{}, draw.Over)
	}

	if r.opts.AxisColor == nil {
		return
	}
	axis := image.NewUniform(r.opts.AxisColor)
	origin := v.WorldToScreen(canvas.WorldPoint{})
	if origin.X >= 0 && origin.X < size.Width {
		x := int(origin.X)
		draw.Draw(r.img, image.Rect(x, 0, x+1, bounds.Dy()), axis, image.Point{}, draw.Over)
	}
	if origin.Y >= 0 && origin.Y < size.Height {
		y := int(origin.Y)
		draw.Draw(r.img, image.Rect(0, y, bounds.Dx(), y+1), axis, image.Point{}, draw.Over)
	}
}

// drawInstances fills the records of dc in order. A run of opaque records
// with the same color is accumulated into one path and filled once;
// translucent records are filled one by one so overlaps still blend.
func (r *Renderer) drawInstances(u gpu.CameraUniform, dc gpu.DrawCall) {
	r.drawn, r.fills = 0, 0
	b := r.img.Bounds()
	size := u.Size()

	var (
		pending bool
		run     scene.Color
	)
	flush := func() {
		if !pending {
			return
		}
		r.ras.Draw(r.img, b, image.NewUniform(run.NRGBA()), image.Point{})
		r.fills++
		pending = false
	}

	for i := 0; i < dc.InstanceCount; i++ {
		inst := r.records[i]
		minX, minY, maxX, maxY, ok := clipQuad(u, inst, dc.VertexCount, size)
		if !ok {
			continue
		}
		r.drawn++

		if pending && (inst.Color != run || run[3] < 1) {
			flush()
		}
		if !pending {
			r.ras.Reset(b.Dx(), b.Dy())
			run = inst.Color
			pending = true
		}
		r.ras.MoveTo(minX, minY)
		r.ras.LineTo(maxX, minY)
		r.ras.LineTo(maxX, maxY)
		r.ras.LineTo(minX, maxY)
		r.ras.ClosePath()
	}
	flush()
}

// clipQuad runs the vertex stage over the quad corners and returns the
// on-canvas box, if any.
func clipQuad(u gpu.CameraUniform, inst scene.Instance, vertices int, size transform.Size) (minX, minY, maxX, maxY float32, ok bool) {
	minX, minY = math32.Inf(1), math32.Inf(1)
	maxX, maxY = math32.Inf(-1), math32.Inf(-1)
	for k := 0; k < vertices; k++ {
		p := transform.NDCToScreen(gpu.VertexStage(u, inst, transform.UnitQuad[k]), size)
		minX, maxX = math32.Min(minX, p.X), math32.Max(maxX, p.X)
		minY, maxY = math32.Min(minY, p.Y), math32.Max(maxY, p.Y)
	}

	// Quads are axis aligned, so clipping to the canvas is a box intersection.
	minX, minY = math32.Max(minX, 0), math32.Max(minY, 0)
	maxX, maxY = math32.Min(maxX, size.Width), math32.Min(maxY, size.Height)
	return minX, minY, maxX, maxY, minX < maxX && minY < maxY
}

// WritePNG encodes the last rendered frame to filename.
func (r *Renderer) WritePNG(filename string) error {
	if r.img == nil {
		return fmt.Errorf("raster: nothing rendered")
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode %s: %w", filename, err)
	}
	return f.Close()
}
