package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"quad-canvas/canvas"
	"quad-canvas/config"
	"quad-canvas/scene"
)

type options struct {
	config      string
	scene       string
	state       string
	watch       bool
	record      string
	logLevel    string
	writeConfig string
	exportScene string
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "quad-canvas.yaml", "settings file; missing means defaults")
	flag.StringVar(&opts.scene, "scene", "", "scene file (.yaml or .star); overrides the config")
	flag.BoolVar(&opts.watch, "watch", false, "reload the scene file when it changes")
	flag.StringVar(&opts.record, "record", "", "write the session's input as a replay file")
	flag.StringVar(&opts.state, "state", "", "restore the scene and camera saved with Ctrl+S")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.writeConfig, "write-config", "", "write the effective settings to this file and exit")
	flag.StringVar(&opts.exportScene, "export-scene", "", "write the loaded scene as YAML to this file and exit")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "quad-canvas:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	view := canvas.DefaultView
	if opts.state != "" {
		state, err := LoadState(opts.state)
		if err != nil {
			return err
		}
		if view, err = state.View(); err != nil {
			return err
		}
		if state.Scene != "" {
			cfg.Scene.Path = state.Scene
		}
	}
	if opts.scene != "" {
		cfg.Scene.Path = opts.scene
	}
	cfg.Scene.Watch = cfg.Scene.Watch || opts.watch

	s := scene.Default()
	if cfg.Scene.Path != "" {
		if s, err = scene.Load(cfg.Scene.Path); err != nil {
			return err
		}
	}

	if opts.writeConfig != "" || opts.exportScene != "" {
		return export(cfg, s, opts, logger)
	}

	g, err := NewGame(cfg, s, view, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Stop(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()
	if cfg.Scene.Watch && cfg.Scene.Path != "" {
		if err := g.Watch(cfg.Scene.Path); err != nil {
			return err
		}
	}
	if opts.record != "" {
		g.Record(opts.record)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.TPS)

	logger.Info("starting", "scene", s.Name, "instances", s.Len(), "limits", cfg.Limits())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// export writes the effective settings and scene instead of opening a window.
func export(cfg config.Config, s *scene.Scene, opts options, logger *slog.Logger) error {
	if opts.writeConfig != "" {
		if err := config.Save(cfg, opts.writeConfig); err != nil {
			return err
		}
		logger.Info("settings written", "file", opts.writeConfig)
	}
	if opts.exportScene != "" {
		if err := scene.SaveYAML(s, opts.exportScene); err != nil {
			return err
		}
		logger.Info("scene exported", "file", opts.exportScene, "instances", s.Len())
	}
	return nil
}
