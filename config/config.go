// Package config loads the application settings. A YAML file is overlaid on
// Default, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"quad-canvas/canvas"
	"quad-canvas/scene"
)

// Config holds every tunable of the viewer.
type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Grid   Grid   `yaml:"grid"`
	Scene  Scene  `yaml:"scene"`

	Background scene.Color `yaml:"background"`
	TPS        int         `yaml:"tps"`
}

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type Camera struct {
	MinZoom float32 `yaml:"min_zoom"`
	MaxZoom float32 `yaml:"max_zoom"`
	// ZoomSpeed is the fractional zoom change per wheel notch.
	ZoomSpeed float32 `yaml:"zoom_speed"`
	// KeyZoomStep is the multiplier applied by the +/- keys and HUD buttons.
	KeyZoomStep float32 `yaml:"key_zoom_step"`
}

type Grid struct {
	Spacing float32     `yaml:"spacing"`
	Color   scene.Color `yaml:"color"`
	Axis    scene.Color `yaml:"axis"`
}

type Scene struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{Width: 800, Height: 600, Title: "quad-canvas", Resizable: true},
		Camera: Camera{
			MinZoom:     canvas.DefaultMinZoom,
			MaxZoom:     canvas.DefaultMaxZoom,
			ZoomSpeed:   0.1,
			KeyZoomStep: 1.25,
		},
		Grid: Grid{
			Spacing: 50,
			Color:   scene.ColorFrom(color.RGBA{44, 44, 52, 255}),
			Axis:    scene.ColorFrom(color.RGBA{255, 100, 100, 150}),
		},
		Background: scene.ColorFrom(color.RGBA{30, 30, 35, 255}),
		TPS:        60,
	}
}

// Limits returns the camera zoom limits.
func (c Config) Limits() canvas.Limits {
	return canvas.Limits{MinZoom: c.Camera.MinZoom, MaxZoom: c.Camera.MaxZoom}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Limits().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !(c.Camera.ZoomSpeed > 0 && c.Camera.ZoomSpeed < 1) {
		return fmt.Errorf("config: zoom_speed %v outside (0, 1)", c.Camera.ZoomSpeed)
	}
	if !(c.Camera.KeyZoomStep > 1) {
		return fmt.Errorf("config: key_zoom_step %v must be greater than 1", c.Camera.KeyZoomStep)
	}
	if c.Grid.Spacing < 0 {
		return fmt.Errorf("config: grid spacing %v is negative", c.Grid.Spacing)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps %d", c.TPS)
	}
	return nil
}

// Load reads filename over Default. A missing file yields Default.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse overlays data on cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return cfg.Validate()
}

// Save writes cfg to filename.
func Save(cfg Config, filename string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
