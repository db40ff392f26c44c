package canvas

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Default zoom limits. Past MaxZoom the clip-space divide starts losing
// precision on float32 hardware.
const (
	DefaultMinZoom = 0.05
	DefaultMaxZoom = 64.0
)

// ErrInvalidZoom is returned when a zoom operation would leave the camera
// with a non-positive, non-finite or out-of-range zoom factor.
var ErrInvalidZoom = errors.New("canvas: invalid zoom")

// WorldPoint is a position or extent in world units.
type WorldPoint struct {
	X, Y float32
}

// ScreenPoint is a position or delta in canvas pixels, origin top-left, y down.
type ScreenPoint struct {
	X, Y float32
}

// Add returns p+q.
func (p WorldPoint) Add(q WorldPoint) WorldPoint { return WorldPoint{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p WorldPoint) Sub(q WorldPoint) WorldPoint { return WorldPoint{p.X - q.X, p.Y - q.Y} }

// Add returns p+q.
func (p ScreenPoint) Add(q ScreenPoint) ScreenPoint { return ScreenPoint{p.X + q.X, p.Y + q.Y} }

func (p ScreenPoint) finite() bool { return finite(p.X) && finite(p.Y) }

// View is an immutable snapshot of the camera.
//
// A world point w appears on screen at (w - Pan) * Zoom.
type View struct {
	Pan  WorldPoint
	Zoom float32
}

// DefaultView is the view a new camera starts with.
var DefaultView = View{Zoom: 1}

// Valid reports whether the view has a finite pan and a finite zoom > 0.
func (v View) Valid() bool {
	return finite(v.Pan.X) && finite(v.Pan.Y) && finite(v.Zoom) && v.Zoom > 0
}

// WorldToScreen maps a world point to canvas pixels.
func (v View) WorldToScreen(w WorldPoint) ScreenPoint {
	return ScreenPoint{
		X: float32((w.X - v.Pan.X) * v.Zoom),
		Y: float32((w.Y - v.Pan.Y) * v.Zoom),
	}
}

// ScreenToWorld maps canvas pixels to the world point under them.
func (v View) ScreenToWorld(s ScreenPoint) WorldPoint {
	return WorldPoint{
		X: v.Pan.X + float32(s.X/v.Zoom),
		Y: v.Pan.Y + float32(s.Y/v.Zoom),
	}
}

func (v View) String() string {
	return fmt.Sprintf("pan (%.2f, %.2f) zoom %.3f", v.Pan.X, v.Pan.Y, v.Zoom)
}

// Limits bounds the zoom factor of a Camera.
type Limits struct {
	MinZoom float32
	MaxZoom float32
}

// DefaultLimits are the limits used when none are configured.
var DefaultLimits = Limits{MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}

// Validate checks that 0 < MinZoom <= MaxZoom and both are finite.
func (l Limits) Validate() error {
	if !finite(l.MinZoom) || !finite(l.MaxZoom) || l.MinZoom <= 0 || l.MaxZoom < l.MinZoom {
		return fmt.Errorf("canvas: bad zoom limits [%v, %v]", l.MinZoom, l.MaxZoom)
	}
	return nil
}

func (l Limits) contains(zoom float32) bool {
	return zoom >= l.MinZoom && zoom <= l.MaxZoom
}

// Camera controls the viewport of the canvas.
//
// The zero value is not initialized; use NewCamera. A Camera is owned by a
// single goroutine and has no internal locking.
type Camera struct {
	view   View
	limits Limits
	ready  bool
}

// NewCamera returns a camera at DefaultView.
func NewCamera(limits Limits) (*Camera, error) {
	return NewCameraAt(DefaultView, limits)
}

// NewCameraAt returns a camera starting at view.
func NewCameraAt(view View, limits Limits) (*Camera, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if !view.Valid() || !limits.contains(view.Zoom) {
		return nil, fmt.Errorf("%w: initial view %v", ErrInvalidZoom, view)
	}
	return &Camera{view: view, limits: limits, ready: true}, nil
}

// CurrentView returns the current view. It panics if the camera was never
// initialized.
func (c *Camera) CurrentView() View {
	if c == nil || !c.ready {
		panic("canvas: CurrentView on uninitialized Camera")
	}
	return c.view
}

// Limits returns the zoom limits.
func (c *Camera) Limits() Limits { return c.limits }

// PanByScreenDelta moves the camera by a pointer delta in pixels. Dragging
// right moves the world right, so the pan moves left by delta/zoom.
// Non-finite deltas, and deltas that would push the pan past the float32
// range, are ignored.
func (c *Camera) PanByScreenDelta(delta ScreenPoint) {
	c.mustBeReady()
	if !delta.finite() {
		return
	}
	pan := WorldPoint{
		X: c.view.Pan.X - float32(delta.X/c.view.Zoom),
		Y: c.view.Pan.Y - float32(delta.Y/c.view.Zoom),
	}
	if !finite(pan.X) || !finite(pan.Y) {
		return
	}
	c.view.Pan = pan
}

// ZoomAtScreenPoint multiplies the zoom by multiplier while keeping the
// world point under pivot fixed on screen. A result below MinZoom is clamped
// to MinZoom; a result above MaxZoom is rejected. On error the camera is
// unchanged.
func (c *Camera) ZoomAtScreenPoint(pivot ScreenPoint, multiplier float32) error {
	c.mustBeReady()
	if !finite(multiplier) || multiplier <= 0 {
		return fmt.Errorf("%w: multiplier %v", ErrInvalidZoom, multiplier)
	}
	if !pivot.finite() {
		return fmt.Errorf("%w: pivot %v", ErrInvalidZoom, pivot)
	}

	old := c.view
	zoom := float32(old.Zoom * multiplier)
	if !finite(zoom) || zoom > c.limits.MaxZoom {
		return fmt.Errorf("%w: %v x %v above %v", ErrInvalidZoom, old.Zoom, multiplier, c.limits.MaxZoom)
	}
	if zoom < c.limits.MinZoom {
		zoom = c.limits.MinZoom
	}
	if zoom == old.Zoom {
		return nil
	}

	worldPivot := old.ScreenToWorld(pivot)
	next := View{
		Pan: WorldPoint{
			X: worldPivot.X - float32(pivot.X/zoom),
			Y: worldPivot.Y - float32(pivot.Y/zoom),
		},
		Zoom: zoom,
	}
	if !next.Valid() {
		return fmt.Errorf("%w: pan overflow at zoom %v", ErrInvalidZoom, zoom)
	}
	c.view = next
	return nil
}

func (c *Camera) mustBeReady() {
	if c == nil || !c.ready {
		panic("canvas: use of uninitialized Camera")
	}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
