// Package loop drives the per-frame tick: apply pending input to the camera,
// render, and report the view that was rendered.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"quad-canvas/canvas"
	"quad-canvas/input"
	"quad-canvas/scene"
	"quad-canvas/transform"
)

// ErrStopped is returned by Tick after Stop.
var ErrStopped = errors.New("loop: stopped")

// Frame is everything a renderer needs for one frame.
type Frame struct {
	Number uint64
	View   canvas.View
	Canvas transform.Size
	Scene  *scene.Scene
}

// Renderer draws one frame.
type Renderer interface {
	Render(f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame) error

// Render calls fn(f).
func (fn RendererFunc) Render(f Frame) error { return fn(f) }

// Report is published to observers after every tick. View is exactly the
// view the frame was rendered with; Err is the render error, if any.
type Report struct {
	Frame   uint64
	View    canvas.View
	Applied int
	Err     error
}

// InputSource appends the events that arrived since the previous frame.
// It reports false when it has nothing more to produce.
type InputSource interface {
	Poll(b *input.Batch) bool
}

// Loop owns the camera and the input batch. All methods must be called from
// the same goroutine.
type Loop struct {
	camera    *canvas.Camera
	batch     *input.Batch
	renderer  Renderer
	canvas    transform.Size
	scene     *scene.Scene
	observers []func(Report)
	closers   []io.Closer
	frame     uint64
	stopped   bool
	logger    *slog.Logger
}

// New returns a loop rendering with r. The camera and batch are owned by the
// loop from now on.
func New(camera *canvas.Camera, batch *input.Batch, r Renderer, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		camera:   camera,
		batch:    batch,
		renderer: r,
		logger:   logger,
	}
}

// Batch returns the batch the input layer appends to.
func (l *Loop) Batch() *input.Batch { return l.batch }

// View returns the camera view as of the last tick.
func (l *Loop) View() canvas.View { return l.camera.CurrentView() }

// Frame returns the number of the last tick, 0 before the first.
func (l *Loop) Frame() uint64 { return l.frame }

// Resize sets the canvas size used from the next frame on.
func (l *Loop) Resize(size transform.Size) {
	if size != l.canvas {
		l.logger.Debug("canvas resized", "width", size.Width, "height", size.Height)
	}
	l.canvas = size
}

// Canvas returns the current canvas size.
func (l *Loop) Canvas() transform.Size { return l.canvas }

// SetScene replaces the scene drawn from the next frame on.
func (l *Loop) SetScene(s *scene.Scene) {
	l.scene = s
	if s != nil {
		l.logger.Info("scene set", "name", s.Name, "instances", s.Len())
	}
}

// Scene returns the current scene.
func (l *Loop) Scene() *scene.Scene { return l.scene }

// Observe registers fn to receive every Report.
func (l *Loop) Observe(fn func(Report)) {
	l.observers = append(l.observers, fn)
}

// AddCloser registers a resource released by Stop.
func (l *Loop) AddCloser(c io.Closer) {
	l.closers = append(l.closers, c)
}

// Stopped reports whether Stop was called.
func (l *Loop) Stopped() bool { return l.stopped }

// Stop ends the loop and releases registered resources. Later calls are
// no-ops.
func (l *Loop) Stop() error {
	if l.stopped {
		return nil
	}
	l.stopped = true
	var errs []error
	for i := len(l.closers) - 1; i >= 0; i-- {
		if err := l.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	l.logger.Debug("loop stopped", "frames", l.frame)
	return errors.Join(errs...)
}

// Tick runs one frame. Render failures do not fail the tick; they are
// returned in the Report and the next tick proceeds normally.
func (l *Loop) Tick() (Report, error) {
	if l.stopped {
		return Report{}, ErrStopped
	}
	l.frame++

	applied := l.drain()
	view := l.camera.CurrentView()
	rep := Report{Frame: l.frame, View: view, Applied: applied}
	rep.Err = l.render(Frame{Number: l.frame, View: view, Canvas: l.canvas, Scene: l.scene})
	if rep.Err != nil {
		l.logger.Warn("frame render failed", "frame", l.frame, "error", rep.Err)
	}

	for _, fn := range l.observers {
		fn(rep)
	}
	return rep, nil
}

// drain applies the pending events in arrival order and always leaves the
// batch empty.
func (l *Loop) drain() int {
	defer l.batch.Clear()

	events := l.batch.Events()
	for _, e := range events {
		switch ev := e.(type) {
		case input.PanByScreenDelta:
			l.camera.PanByScreenDelta(ev.DeltaPx)
		case input.ZoomAtScreenPoint:
			if err := l.camera.ZoomAtScreenPoint(ev.PivotPx, ev.ZoomMultiplier); err != nil {
				l.logger.Debug("zoom rejected", "event", ev, "error", err)
			}
		default:
			panic(fmt.Sprintf("loop: unknown event %T", e))
		}
	}
	return len(events)
}

func (l *Loop) render(f Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loop: render panicked: %v", r)
		}
	}()
	return l.renderer.Render(f)
}

// Run ticks once per value received on frames, polling src for input right
// before each tick. It returns when ctx is done, frames is closed, the loop
// is stopped, or src reports it is exhausted.
func (l *Loop) Run(ctx context.Context, frames <-chan time.Time, src InputSource) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok || l.stopped {
				return nil
			}
		}

		if src != nil && !src.Poll(l.batch) {
			return nil
		}
		if _, err := l.Tick(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}
