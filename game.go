package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"quad-canvas/canvas"
	"quad-canvas/config"
	"quad-canvas/input"
	"quad-canvas/loop"
	"quad-canvas/scene"
	"quad-canvas/transform"
	"quad-canvas/ui"
)

// errorHoldFrames is how long a render error stays on the HUD after the last
// failing frame.
const errorHoldFrames = 120

type Game struct {
	scenePath string
	loop      *loop.Loop
	renderer  *QuadRenderer
	watcher   *scene.Watcher
	record    *input.Replay
	logger    *slog.Logger

	screenWidth  int
	screenHeight int

	// Sub-systems
	input *InputSystem
	ui    *ui.System

	screenshotRequested bool
	stopRequested       bool
	lastDraws           int
}

func NewGame(cfg config.Config, s *scene.Scene, view canvas.View, logger *slog.Logger) (*Game, error) {
	cam, err := canvas.NewCameraAt(view, cfg.Limits())
	if err != nil {
		return nil, err
	}
	r, err := NewQuadRenderer(cfg.Background, cfg.Grid.Spacing, cfg.Grid.Color, cfg.Grid.Axis)
	if err != nil {
		return nil, err
	}

	g := &Game{scenePath: cfg.Scene.Path, renderer: r, logger: logger}
	batch := input.NewBatch(64)
	g.loop = loop.New(cam, batch, r, logger)
	g.loop.SetScene(s)
	g.input = NewInputSystem(g, ebitenDevice{}, batch, cfg.Camera.ZoomSpeed, cfg.Camera.KeyZoomStep)
	g.ui = ui.NewSystem(ui.LoadFace(),
		func() { g.input.ZoomAtCenter(cfg.Camera.KeyZoomStep) },
		func() { g.input.ZoomAtCenter(1 / cfg.Camera.KeyZoomStep) },
	)
	g.loop.Observe(g.showErrors)
	return g, nil
}

// Watch reloads the scene whenever filename changes on disk.
func (g *Game) Watch(filename string) error {
	w, err := scene.NewWatcher(filename, g.logger)
	if err != nil {
		return err
	}
	g.watcher = w
	g.loop.AddCloser(w)
	return nil
}

// Record captures every tick's input and writes it as a replay on stop.
func (g *Game) Record(filename string) {
	g.record = &input.Replay{Canvas: input.CanvasState{Width: float32(g.screenWidth), Height: float32(g.screenHeight)}}
	g.loop.AddCloser(replayWriter{replay: g.record, filename: filename, logger: g.logger})
}

type replayWriter struct {
	replay   *input.Replay
	filename string
	logger   *slog.Logger
}

func (w replayWriter) Close() error {
	if err := input.SaveReplay(w.replay, w.filename); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	w.logger.Info("replay saved", "file", w.filename, "frames", len(w.replay.Frames))
	return nil
}

// Stop ends the loop and releases the watcher and recorder.
func (g *Game) Stop() error { return g.loop.Stop() }

func (g *Game) Update() error {
	if g.stopRequested {
		if err := g.loop.Stop(); err != nil {
			g.logger.Error("stop", "error", err)
		}
	}
	if g.loop.Stopped() {
		return ebiten.Termination
	}

	g.pollWatcher()

	// Delegate to sub-systems
	g.ui.Update()
	g.input.Update()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher != nil {
		pollScenes(g.watcher, g.loop, g.ui.Debug)
	}
}

// pollScenes takes at most one reload result from w. A good scene replaces
// the current one and dismisses a pending load error.
func pollScenes(w *scene.Watcher, l *loop.Loop, debug *ui.DebugPanel) {
	select {
	case s, ok := <-w.Scenes:
		if ok {
			l.SetScene(s)
			debug.Clear()
		}
	case err, ok := <-w.Errors:
		if ok {
			debug.SetError(l.Frame(), err)
		}
	default:
	}
}

func (g *Game) showErrors(rep loop.Report) {
	if rep.Err != nil {
		g.ui.Debug.SetError(rep.Frame, rep.Err)
		return
	}
	g.ui.Debug.Expire(rep.Frame, errorHoldFrames)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.record != nil {
		g.record.Record(g.loop.Batch().Events())
	}

	g.renderer.SetTarget(screen)
	rep, err := g.loop.Tick()
	g.renderer.SetTarget(nil)
	if err != nil {
		return
	}
	if d := g.renderer.Draws(); d != g.lastDraws {
		g.logger.Debug("quad batches changed", "frame", rep.Frame, "batches", d, "instances", g.loop.Scene().Len())
		g.lastDraws = d
	}

	mx, my := ebiten.CursorPosition()
	cursor := canvas.ScreenPoint{X: float32(mx), Y: float32(my)}
	g.ui.Draw(screen, ui.Status(rep.View, g.loop.Scene(), cursor, ebiten.ActualFPS()))

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		g.saveScreenshot(screen, fmt.Sprintf("screenshot-%d.png", rep.Frame))
	}
}

func (g *Game) saveScreenshot(screen *ebiten.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		g.logger.Error("screenshot", "error", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, screen); err != nil {
		g.logger.Error("screenshot", "error", err)
		return
	}
	g.logger.Info("screenshot saved", "file", filename)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	g.loop.Resize(transform.Size{Width: float32(outsideWidth), Height: float32(outsideHeight)})
	g.ui.Resize(outsideWidth, outsideHeight)
	if g.record != nil && g.record.Canvas.Width == 0 {
		g.record.Canvas = input.CanvasState{Width: float32(outsideWidth), Height: float32(outsideHeight)}
	}
	return outsideWidth, outsideHeight
}

// Host

func (g *Game) IsMouseOver(mx, my int) bool { return g.ui.IsMouseOver(mx, my) }

func (g *Game) CanvasCenter() canvas.ScreenPoint {
	return canvas.ScreenPoint{X: float32(g.screenWidth) / 2, Y: float32(g.screenHeight) / 2}
}

func (g *Game) RequestScreenshot() { g.screenshotRequested = true }

func (g *Game) RequestStop() { g.stopRequested = true }

func (g *Game) SaveState() {
	if err := SaveState(g.loop.View(), g.scenePath, StateFile); err != nil {
		g.logger.Error("save state", "error", err)
		return
	}
	g.logger.Info("state saved", "file", StateFile, "view", g.loop.View().String())
}
