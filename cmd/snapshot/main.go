// Command snapshot replays recorded camera input against a scene without a
// window and writes the final frame as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"quad-canvas/canvas"
	"quad-canvas/config"
	"quad-canvas/input"
	"quad-canvas/loop"
	"quad-canvas/raster"
	"quad-canvas/scene"
	"quad-canvas/transform"
)

func main() {
	configPath := flag.String("config", "quad-canvas.yaml", "settings file; missing means defaults")
	scenePath := flag.String("scene", "", "scene file (.yaml or .star); empty uses the built-in scene")
	replayPath := flag.String("replay", "", "replay file with the input of each frame")
	out := flag.String("o", "snapshot.png", "output PNG")
	width := flag.Int("width", 0, "canvas width; 0 uses the replay's or the config's")
	height := flag.Int("height", 0, "canvas height; 0 uses the replay's or the config's")
	interval := flag.Duration("interval", time.Millisecond, "time between replayed frames")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		config:   *configPath,
		scene:    *scenePath,
		replay:   *replayPath,
		out:      *out,
		width:    *width,
		height:   *height,
		interval: *interval,
	}
	if err := run(ctx, opts, logger); err != nil {
		logger.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	config, scene, replay, out string
	width, height              int
	interval                   time.Duration
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}

	s := scene.Default()
	if opts.scene != "" {
		if s, err = scene.Load(opts.scene); err != nil {
			return err
		}
	}

	replay := &input.Replay{Frames: []input.Frame{{}}}
	if opts.replay != "" {
		if replay, err = input.LoadReplay(opts.replay); err != nil {
			return err
		}
	}

	size := transform.Size{Width: float32(cfg.Window.Width), Height: float32(cfg.Window.Height)}
	if replay.Canvas.Width > 0 && replay.Canvas.Height > 0 {
		size = transform.Size{Width: replay.Canvas.Width, Height: replay.Canvas.Height}
	}
	if opts.width > 0 {
		size.Width = float32(opts.width)
	}
	if opts.height > 0 {
		size.Height = float32(opts.height)
	}

	cam, err := canvas.NewCamera(cfg.Limits())
	if err != nil {
		return err
	}
	r := raster.New(raster.Options{
		Background:  cfg.Background.NRGBA(),
		GridSpacing: cfg.Grid.Spacing,
		GridColor:   cfg.Grid.Color.NRGBA(),
		AxisColor:   cfg.Grid.Axis.NRGBA(),
	})

	l := loop.New(cam, input.NewBatch(16), r, logger)
	defer l.Stop()
	l.Resize(size)
	l.SetScene(s)

	var failed error
	l.Observe(func(rep loop.Report) {
		logger.Debug("frame", "n", rep.Frame, "view", rep.View.String(), "events", rep.Applied, "drawn", r.Drawn())
		if rep.Err != nil {
			failed = rep.Err
		}
	})

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()
	if err := l.Run(ctx, ticker.C, input.NewPlayer(replay)); err != nil {
		return err
	}
	if failed != nil {
		return fmt.Errorf("render: %w", failed)
	}

	if err := r.WritePNG(opts.out); err != nil {
		return err
	}
	logger.Info("snapshot written", "file", opts.out, "frames", len(replay.Frames), "view", l.View().String())
	return nil
}
