package main

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quad-canvas/canvas"
	"quad-canvas/input"
	"quad-canvas/loop"
	"quad-canvas/scene"
	"quad-canvas/transform"
	"quad-canvas/ui"
)

func newTestLoop(t *testing.T) *loop.Loop {
	t.Helper()
	cam, err := canvas.NewCamera(canvas.DefaultLimits)
	require.NoError(t, err)
	l := loop.New(cam, input.NewBatch(4), loop.RendererFunc(func(loop.Frame) error { return nil }),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.Resize(transform.Size{Width: 800, Height: 600})
	return l
}

func TestPollScenesReloadErrorExpires(t *testing.T) {
	l := newTestLoop(t)
	w := &scene.Watcher{Scenes: make(chan *scene.Scene, 1), Errors: make(chan error, 1)}
	var debug ui.DebugPanel

	for i := 0; i < 10; i++ {
		_, err := l.Tick()
		require.NoError(t, err)
	}
	w.Errors <- errors.New("demo.yaml: bad color")
	pollScenes(w, l, &debug)
	assert.Equal(t, "demo.yaml: bad color", debug.Error)
	assert.Equal(t, uint64(10), debug.Frame)

	debug.Expire(l.Frame()+errorHoldFrames, errorHoldFrames)
	assert.NotEmpty(t, debug.Error)
	debug.Expire(l.Frame()+errorHoldFrames+1, errorHoldFrames)
	assert.Empty(t, debug.Error)
}

func TestPollScenesReloadClearsError(t *testing.T) {
	l := newTestLoop(t)
	w := &scene.Watcher{Scenes: make(chan *scene.Scene, 1), Errors: make(chan error, 1)}
	var debug ui.DebugPanel

	w.Errors <- errors.New("demo.yaml: bad color")
	pollScenes(w, l, &debug)
	require.NotEmpty(t, debug.Error)

	s := scene.Default()
	w.Scenes <- s
	pollScenes(w, l, &debug)
	assert.Same(t, s, l.Scene())
	assert.Empty(t, debug.Error)

	// Nothing pending, nothing closed.
	pollScenes(w, l, &debug)
	assert.Same(t, s, l.Scene())

	close(w.Scenes)
	pollScenes(w, l, &debug)
	assert.Same(t, s, l.Scene())
}
