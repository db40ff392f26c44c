package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DebugPanel shows the most recent frame error in the bottom-right corner.
type DebugPanel struct {
	Error string
	// Frame is the frame the error was reported for.
	Frame uint64
}

func (d *DebugPanel) SetError(frame uint64, err error) {
	d.Frame = frame
	d.Error = err.Error()
}

// Expire clears the error once more than hold frames have passed since it
// was reported.
func (d *DebugPanel) Expire(frame, hold uint64) {
	if d.Error != "" && frame > d.Frame+hold {
		d.Clear()
	}
}

func (d *DebugPanel) Clear() {
	d.Error = ""
	d.Frame = 0
}

func (d *DebugPanel) Draw(screen *ebiten.Image, w, h int, face text.Face) {
	if d == nil || d.Error == "" {
		return
	}
	pw, ph := 360, 80
	x := w - pw - 10
	y := h - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 40, 40, 220}, false)
	DrawText(screen, face, d.Error, float64(x+8), float64(y+8), color.RGBA{255, 200, 50, 255})
}
