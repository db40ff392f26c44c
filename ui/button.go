package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var buttonColor = color.RGBA{60, 60, 70, 200}

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

func (b *Button) Draw(screen *ebiten.Image, face text.Face) {
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, buttonColor, false)
	DrawText(screen, face, b.Label, float64(b.X)+10, float64(b.Y)+6, color.White)
}
