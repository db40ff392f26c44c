package canvas

import "github.com/chewxy/math32"

// maxGridLines caps the lines returned per axis when zoomed far out.
const maxGridLines = 512

// GridLines returns the screen positions of the vertical (xs) and horizontal
// (ys) lines of a world-aligned grid with the given spacing that fall inside
// a width x height canvas. Lines that would be closer than two pixels apart
// are dropped entirely.
func GridLines(v View, width, height, spacing float32) (xs, ys []float32) {
	if spacing <= 0 || !v.Valid() || spacing*v.Zoom < 2 {
		return nil, nil
	}

	topLeft := v.ScreenToWorld(ScreenPoint{})
	bottomRight := v.ScreenToWorld(ScreenPoint{X: width, Y: height})

	for wx := math32.Floor(topLeft.X/spacing) * spacing; wx <= bottomRight.X && len(xs) < maxGridLines; wx += spacing {
		if sx := v.WorldToScreen(WorldPoint{X: wx}).X; sx >= 0 {
			xs = append(xs, sx)
		}
	}
	for wy := math32.Floor(topLeft.Y/spacing) * spacing; wy <= bottomRight.Y && len(ys) < maxGridLines; wy += spacing {
		if sy := v.WorldToScreen(WorldPoint{Y: wy}).Y; sy >= 0 {
			ys = append(ys, sy)
		}
	}
	return xs, ys
}
