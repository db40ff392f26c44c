package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	buttonSize   = 30
	buttonMargin = 10
)

// System is the heads-up display: status text, zoom buttons and the debug
// panel.
type System struct {
	buttons []*Button
	face    text.Face
	width   int
	height  int
	Debug   *DebugPanel
}

func NewSystem(face text.Face, onZoomIn, onZoomOut func()) *System {
	ui := &System{
		face:  face,
		Debug: &DebugPanel{},
	}
	ui.buttons = []*Button{
		{Label: "+", W: buttonSize, H: buttonSize, OnClick: onZoomIn},
		{Label: "-", W: buttonSize, H: buttonSize, OnClick: onZoomOut},
	}
	return ui
}

// Resize lays the buttons out along the top-right edge of a w x h screen.
func (ui *System) Resize(w, h int) {
	ui.width, ui.height = w, h
	x := float32(w)
	for _, b := range ui.buttons {
		x -= b.W + buttonMargin
		b.X = x
		b.Y = buttonMargin
	}
}

func (ui *System) IsMouseOver(mx, my int) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Click runs the handler of the button under (mx, my) and reports whether
// one was hit.
func (ui *System) Click(mx, my int) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *System) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ui.Click(ebiten.CursorPosition())
	}
}

func (ui *System) Draw(screen *ebiten.Image, status string) {
	DrawText(screen, ui.face, status, buttonMargin, buttonMargin, color.White)
	for _, b := range ui.buttons {
		b.Draw(screen, ui.face)
	}
	ui.Debug.Draw(screen, ui.width, ui.height, ui.face)
}
