// Package input holds the camera events produced between two ticks and the
// batch they are collected in.
package input

import (
	"fmt"

	"quad-canvas/canvas"
)

// Event is a camera-affecting input event. The set of events is closed:
// PanByScreenDelta and ZoomAtScreenPoint are the only implementations.
type Event interface {
	isEvent()
	fmt.Stringer
}

// PanByScreenDelta is a relative pointer movement since the last sample.
type PanByScreenDelta struct {
	DeltaPx canvas.ScreenPoint
}

// ZoomAtScreenPoint scales the zoom by ZoomMultiplier around PivotPx.
// A multiplier of 1 leaves the camera unchanged.
type ZoomAtScreenPoint struct {
	PivotPx        canvas.ScreenPoint
	ZoomMultiplier float32
}

func (PanByScreenDelta) isEvent()  {}
func (ZoomAtScreenPoint) isEvent() {}

func (e PanByScreenDelta) String() string {
	return fmt.Sprintf("pan_by_screen_delta(%.2f, %.2f)", e.DeltaPx.X, e.DeltaPx.Y)
}

func (e ZoomAtScreenPoint) String() string {
	return fmt.Sprintf("zoom_at_screen_point(%.2f, %.2f) x%.4f", e.PivotPx.X, e.PivotPx.Y, e.ZoomMultiplier)
}
