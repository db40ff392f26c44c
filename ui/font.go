package ui

import (
	"bytes"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSize is the HUD font size in pixels.
const FontSize = 14

// LoadFace returns the HUD font face, or nil if the embedded font cannot be
// parsed. Drawing with a nil face is a no-op.
func LoadFace() text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		slog.Error("load HUD font", "error", err)
		return nil
	}
	return &text.GoTextFace{Source: s, Size: FontSize}
}

// DrawText draws multiline s with its top-left corner at (x, y).
func DrawText(screen *ebiten.Image, face text.Face, s string, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = FontSize * 1.4
	text.Draw(screen, s, face, op)
}
