package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"quad-canvas/canvas"
	"quad-canvas/scene"
)

func TestButtonsFollowScreenWidth(t *testing.T) {
	var in, out int
	ui := NewSystem(nil, func() { in++ }, func() { out++ })
	ui.Resize(800, 600)

	// "+" is rightmost, "-" to its left.
	assert.True(t, ui.IsMouseOver(775, 25))
	assert.True(t, ui.IsMouseOver(735, 25))
	assert.False(t, ui.IsMouseOver(400, 300))

	assert.True(t, ui.Click(775, 25))
	assert.True(t, ui.Click(735, 25))
	assert.True(t, ui.Click(735, 25))
	assert.False(t, ui.Click(10, 10))
	assert.Equal(t, 1, in)
	assert.Equal(t, 2, out)

	ui.Resize(400, 300)
	assert.False(t, ui.IsMouseOver(775, 25))
	assert.True(t, ui.IsMouseOver(375, 25))
}

func TestDebugPanelExpires(t *testing.T) {
	var d DebugPanel
	d.SetError(0, errors.New("scene.yaml: bad color"))
	d.Expire(120, 120)
	assert.NotEmpty(t, d.Error)
	d.Expire(121, 120)
	assert.Empty(t, d.Error)

	d.SetError(500, errors.New("surface lost"))
	d.Expire(550, 120)
	assert.Equal(t, "surface lost", d.Error)
	d.Expire(621, 120)
	assert.Empty(t, d.Error)
}

func TestDebugPanel(t *testing.T) {
	var d DebugPanel
	d.SetError(7, errors.New("surface lost"))
	assert.Equal(t, "surface lost", d.Error)
	assert.Equal(t, uint64(7), d.Frame)
	d.Clear()
	assert.Empty(t, d.Error)
}

func TestStatus(t *testing.T) {
	view := canvas.View{Pan: canvas.WorldPoint{X: 0, Y: 50}, Zoom: 2}
	got := Status(view, scene.Default(), canvas.ScreenPoint{X: 400, Y: 300}, 59.6)
	assert.Equal(t, "pan (0.00, 50.00) zoom 2.000\ncursor (200.0, 200.0)\nscene default: 3 instances\n60 fps", got)

	got = Status(canvas.DefaultView, nil, canvas.ScreenPoint{}, 0)
	assert.Equal(t, "pan (0.00, 0.00) zoom 1.000\ncursor (0.0, 0.0)\n0 fps", got)
}
