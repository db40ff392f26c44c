package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quad-canvas/canvas"
	"quad-canvas/input"
)

type fakeDevice struct {
	x, y    int
	wheel   float64
	buttons map[ebiten.MouseButton]bool
	held    map[ebiten.Key]bool
	pressed map[ebiten.Key]bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buttons: map[ebiten.MouseButton]bool{},
		held:    map[ebiten.Key]bool{},
		pressed: map[ebiten.Key]bool{},
	}
}

func (d *fakeDevice) CursorPosition() (int, int)                     { return d.x, d.y }
func (d *fakeDevice) Wheel() (float64, float64)                      { return 0, d.wheel }
func (d *fakeDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool { return d.buttons[b] }
func (d *fakeDevice) IsKeyPressed(k ebiten.Key) bool                 { return d.held[k] }
func (d *fakeDevice) IsKeyJustPressed(k ebiten.Key) bool             { return d.pressed[k] }

type fakeHost struct {
	overUI      bool
	screenshots int
	stops       int
	saves       int
}

func (h *fakeHost) IsMouseOver(mx, my int) bool { return h.overUI }
func (h *fakeHost) CanvasCenter() canvas.ScreenPoint {
	return canvas.ScreenPoint{X: 400, Y: 300}
}
func (h *fakeHost) RequestScreenshot() { h.screenshots++ }
func (h *fakeHost) RequestStop()       { h.stops++ }
func (h *fakeHost) SaveState()         { h.saves++ }

func newInput() (*InputSystem, *fakeDevice, *fakeHost, *input.Batch) {
	d, h, b := newFakeDevice(), &fakeHost{}, input.NewBatch(8)
	return NewInputSystem(h, d, b, 0.1, 2), d, h, b
}

func TestDragProducesPanDeltas(t *testing.T) {
	is, d, _, b := newInput()

	d.x, d.y = 100, 100
	d.buttons[ebiten.MouseButtonLeft] = true
	is.Update()
	assert.Equal(t, 0, b.Len(), "pressing starts a drag without moving")

	d.x, d.y = 130, 90
	is.Update()
	d.x, d.y = 130, 90
	is.Update()
	d.x, d.y = 120, 95
	is.Update()

	require.Equal(t, 2, b.Len())
	assert.Equal(t, input.PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: 30, Y: -10}}, b.Events()[0])
	assert.Equal(t, input.PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: -10, Y: 5}}, b.Events()[1])

	d.buttons[ebiten.MouseButtonLeft] = false
	d.x, d.y = 0, 0
	is.Update()
	assert.Equal(t, 2, b.Len())
}

func TestDragStartingOnHUDDoesNotPan(t *testing.T) {
	is, d, h, b := newInput()
	h.overUI = true

	d.buttons[ebiten.MouseButtonLeft] = true
	is.Update()
	d.x = 50
	is.Update()
	assert.Equal(t, 0, b.Len())

	// Middle button pans anywhere.
	d.buttons[ebiten.MouseButtonLeft] = false
	is.Update()
	d.buttons[ebiten.MouseButtonMiddle] = true
	is.Update()
	d.x = 60
	is.Update()
	assert.Equal(t, 1, b.Len())
}

func TestWheelZoomsAtCursor(t *testing.T) {
	is, d, _, b := newInput()
	d.x, d.y = 100, 200
	d.wheel = 1
	is.Update()

	require.Equal(t, 1, b.Len())
	ev := b.Events()[0].(input.ZoomAtScreenPoint)
	assert.Equal(t, canvas.ScreenPoint{X: 100, Y: 200}, ev.PivotPx)
	assert.InDelta(t, 1.1, ev.ZoomMultiplier, 1e-6)

	b.Clear()
	d.wheel = -2
	is.Update()
	assert.InDelta(t, 1/1.21, b.Events()[0].(input.ZoomAtScreenPoint).ZoomMultiplier, 1e-6)
}

func TestKeysZoomAtCenterAndControl(t *testing.T) {
	is, d, h, b := newInput()
	d.pressed[ebiten.KeyEqual] = true
	d.pressed[ebiten.KeyF12] = true
	d.pressed[ebiten.KeyEscape] = true
	is.Update()

	require.Equal(t, 1, b.Len())
	assert.Equal(t, input.ZoomAtScreenPoint{PivotPx: canvas.ScreenPoint{X: 400, Y: 300}, ZoomMultiplier: 2}, b.Events()[0])
	assert.Equal(t, 1, h.screenshots)
	assert.Equal(t, 1, h.stops)

	b.Clear()
	d.pressed = map[ebiten.Key]bool{ebiten.KeyMinus: true}
	is.Update()
	assert.Equal(t, input.ZoomAtScreenPoint{PivotPx: canvas.ScreenPoint{X: 400, Y: 300}, ZoomMultiplier: 0.5}, b.Events()[0])
}

func TestCtrlSSavesState(t *testing.T) {
	is, d, h, _ := newInput()
	d.pressed[ebiten.KeyS] = true
	is.Update()
	assert.Equal(t, 0, h.saves, "S alone does nothing")

	d.held[ebiten.KeyControl] = true
	is.Update()
	assert.Equal(t, 1, h.saves)
}
