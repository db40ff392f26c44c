package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quad-canvas/canvas"
	"quad-canvas/scene"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, canvas.DefaultLimits, cfg.Limits())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
window:
  width: 1024
camera:
  max_zoom: 16
grid:
  color: "#336699"
background: black
scene:
  path: scenes/demo.yaml
  watch: true
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "untouched keys keep their default")
	assert.Equal(t, "quad-canvas", cfg.Window.Title)
	assert.Equal(t, canvas.Limits{MinZoom: canvas.DefaultMinZoom, MaxZoom: 16}, cfg.Limits())
	assert.Equal(t, float32(0.1), cfg.Camera.ZoomSpeed)
	assert.Equal(t, scene.Color{0, 0, 0, 1}, cfg.Background)
	assert.Equal(t, scene.Color{0x33 / 255.0, 0x66 / 255.0, 0x99 / 255.0, 1}, cfg.Grid.Color)
	assert.Equal(t, "scenes/demo.yaml", cfg.Scene.Path)
	assert.True(t, cfg.Scene.Watch)
}

func TestParseRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"window", "window: {width: 0}"},
		{"limits", "camera: {min_zoom: 2, max_zoom: 1}"},
		{"zoom speed", "camera: {zoom_speed: 1.5}"},
		{"key step", "camera: {key_zoom_step: 0.5}"},
		{"grid", "grid: {spacing: -1}"},
		{"tps", "tps: 0"},
		{"color", "background: notacolor"},
		{"syntax", "window: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Parse([]byte(tt.yaml), &cfg))
		})
	}
}

func TestLoadMissingFileIsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "saved"
	cfg.Grid.Spacing = 25
	cfg.Camera.KeyZoomStep = 2

	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(cfg, name))
	back, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadReportsFilename(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(name, []byte("tps: -3\n"), 0o644))
	_, err := Load(name)
	assert.ErrorContains(t, err, "bad.yaml")
}
