package main

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"quad-canvas/canvas"
	"quad-canvas/input"
)

// Device is the slice of ebiten's input state the input system reads.
type Device interface {
	CursorPosition() (int, int)
	Wheel() (float64, float64)
	IsMouseButtonPressed(ebiten.MouseButton) bool
	IsKeyPressed(ebiten.Key) bool
	IsKeyJustPressed(ebiten.Key) bool
}

type ebitenDevice struct{}

func (ebitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenDevice) Wheel() (float64, float64)  { return ebiten.Wheel() }
func (ebitenDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}
func (ebitenDevice) IsKeyPressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenDevice) IsKeyJustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Host defines the callbacks the input system needs from the game.
type Host interface {
	IsMouseOver(mx, my int) bool
	CanvasCenter() canvas.ScreenPoint
	RequestScreenshot()
	RequestStop()
	SaveState()
}

// InputSystem turns device state into camera events on a batch.
type InputSystem struct {
	host      Host
	device    Device
	batch     *input.Batch
	zoomSpeed float32
	keyStep   float32

	isPanning  bool
	lastMouseX int
	lastMouseY int
}

func NewInputSystem(h Host, d Device, b *input.Batch, zoomSpeed, keyStep float32) *InputSystem {
	return &InputSystem{host: h, device: d, batch: b, zoomSpeed: zoomSpeed, keyStep: keyStep}
}

func (is *InputSystem) Update() {
	mx, my := is.device.CursorPosition()

	is.handleControlKeys()
	is.handleZoom(mx, my)
	is.handlePanning(mx, my, is.host.IsMouseOver(mx, my))
}

func (is *InputSystem) handleControlKeys() {
	if is.device.IsKeyJustPressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}
	if is.device.IsKeyJustPressed(ebiten.KeyEscape) {
		is.host.RequestStop()
	}
	if is.device.IsKeyPressed(ebiten.KeyControl) && is.device.IsKeyJustPressed(ebiten.KeyS) {
		is.host.SaveState()
	}
}

func (is *InputSystem) handleZoom(mx, my int) {
	if _, dy := is.device.Wheel(); dy != 0 {
		is.batch.Append(input.ZoomAtScreenPoint{
			PivotPx:        canvas.ScreenPoint{X: float32(mx), Y: float32(my)},
			ZoomMultiplier: math32.Pow(1+is.zoomSpeed, float32(dy)),
		})
	}

	if is.device.IsKeyJustPressed(ebiten.KeyEqual) || is.device.IsKeyJustPressed(ebiten.KeyKPAdd) {
		is.ZoomAtCenter(is.keyStep)
	}
	if is.device.IsKeyJustPressed(ebiten.KeyMinus) || is.device.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		is.ZoomAtCenter(1 / is.keyStep)
	}
}

// ZoomAtCenter queues a zoom around the middle of the canvas.
func (is *InputSystem) ZoomAtCenter(multiplier float32) {
	is.batch.Append(input.ZoomAtScreenPoint{PivotPx: is.host.CanvasCenter(), ZoomMultiplier: multiplier})
}

func (is *InputSystem) handlePanning(mx, my int, overUI bool) {
	isPanButtonHeld := is.device.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
		is.device.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if !is.isPanning {
		// A left press over the HUD belongs to the HUD; space forces a pan.
		startOK := is.device.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
			is.device.IsKeyPressed(ebiten.KeySpace) || !overUI
		if isPanButtonHeld && startOK {
			is.isPanning = true
			is.lastMouseX, is.lastMouseY = mx, my
		}
		return
	}

	if !isPanButtonHeld {
		is.isPanning = false
		return
	}
	dx, dy := mx-is.lastMouseX, my-is.lastMouseY
	if dx != 0 || dy != 0 {
		is.batch.Append(input.PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: float32(dx), Y: float32(dy)}})
	}
	is.lastMouseX, is.lastMouseY = mx, my
}
