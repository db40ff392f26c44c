// Package transform maps world-space quad corners through the camera into
// normalized device coordinates:
//
//	world  = position + corner * size
//	screen = (world - pan) * zoom
//	ndc.x  = (screen.x / width)  * 2 - 1
//	ndc.y  = 1 - (screen.y / height) * 2
//
// Every intermediate is rounded to float32 with an explicit conversion so the
// compiler cannot fuse multiply-adds; the result matches a float32 shader
// evaluating the same expression.
package transform

import "quad-canvas/canvas"

// Size is the canvas size in pixels.
type Size struct {
	Width, Height float32
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool { return !(s.Width > 0 && s.Height > 0) }

// Corner is a unit-quad corner; each component is 0 or 1.
type Corner struct {
	X, Y float32
}

// NDC is a point in normalized device coordinates: x right, y up, both
// in [-1, 1] on the visible canvas.
type NDC struct {
	X, Y float32
}

// CornerWorld returns the world position of a corner of the rectangle at
// pos with extent size.
func CornerWorld(pos, size canvas.WorldPoint, c Corner) canvas.WorldPoint {
	return canvas.WorldPoint{
		X: pos.X + float32(c.X*size.X),
		Y: pos.Y + float32(c.Y*size.Y),
	}
}

// WorldToScreen is the camera stage.
func WorldToScreen(v canvas.View, w canvas.WorldPoint) canvas.ScreenPoint {
	return v.WorldToScreen(w)
}

// ScreenToNDC is the viewport stage. Screen y grows down, clip y grows up.
func ScreenToNDC(s canvas.ScreenPoint, size Size) NDC {
	return NDC{
		X: float32(float32(s.X/size.Width)*2) - 1,
		Y: 1 - float32(float32(s.Y/size.Height)*2),
	}
}

// NDCToScreen inverts ScreenToNDC.
func NDCToScreen(n NDC, size Size) canvas.ScreenPoint {
	return canvas.ScreenPoint{
		X: float32(float32(n.X+1)*0.5) * size.Width,
		Y: float32(float32(1-n.Y)*0.5) * size.Height,
	}
}

// ClipPosition runs the whole pipeline for one corner of one instance.
func ClipPosition(v canvas.View, size Size, pos, extent canvas.WorldPoint, c Corner) NDC {
	return ScreenToNDC(WorldToScreen(v, CornerWorld(pos, extent, c)), size)
}

// UnitQuad lists the corners shared by every instance.
var UnitQuad = [4]Corner{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// QuadIndices triangulates UnitQuad as two counter-clockwise (in clip space)
// triangles.
var QuadIndices = [6]uint16{0, 1, 2, 1, 3, 2}
