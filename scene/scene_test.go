package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quad-canvas/canvas"
)

const sceneYAML = `
name: demo
instances:
  - position: {x: 10, y: 20}
    size: {x: 30, y: 40}
    color: [0.2, 0.4, 0.6, 1]
  - position: {x: -5, y: 0}
    size: {x: 1, y: 1}
    color: "#ff000080"
  - position: {x: 0, y: 0}
    size: {x: 2, y: 2}
    color: steelblue
  - position: {x: 0, y: 0}
    size: {x: 2, y: 2}
    color: [1, 1, 1]
`

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(sceneYAML), "fallback")
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	require.Equal(t, 4, s.Len())
	assert.Equal(t, Instance{
		Position: canvas.WorldPoint{X: 10, Y: 20},
		Size:     canvas.WorldPoint{X: 30, Y: 40},
		Color:    Color{0.2, 0.4, 0.6, 1},
	}, s.Instances[0])
	assert.Equal(t, Color{1, 0, 0, float32(0x80) / 255}, s.Instances[1].Color)
	assert.Equal(t, Color{70.0 / 255, 130.0 / 255, 180.0 / 255, 1}, s.Instances[2].Color)
	assert.Equal(t, Color{1, 1, 1, 1}, s.Instances[3].Color)
}

func TestParseRejectsBadInstances(t *testing.T) {
	for _, doc := range []string{
		"instances: [{position: {x: 0, y: 0}, size: {x: -1, y: 1}, color: red}]",
		"instances: [{position: {x: 0, y: 0}, size: {x: 1, y: 1}, color: [2, 0, 0]}]",
		"instances: [{position: {x: 0, y: 0}, size: {x: 1, y: 1}, color: [1, 0]}]",
		"instances: [{position: {x: 0, y: 0}, size: {x: 1, y: 1}, color: notacolor}]",
		"instances: [{position: {x: .nan, y: 0}, size: {x: 1, y: 1}, color: red}]",
	} {
		_, err := Parse([]byte(doc), "bad")
		assert.Error(t, err, doc)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 1, 1, 1}, c)

	c, err = ParseColor("Black")
	require.NoError(t, err)
	assert.Equal(t, Color{0, 0, 0, 1}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestColorConversions(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}
	assert.Equal(t, uint8(128), c.NRGBA().G)
	assert.Equal(t, Color{0.5, 0.25, 0, 0.5}, c.Premultiplied())
}

func TestSaveLoadYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "scene.yaml")
	s := Default()
	require.NoError(t, SaveYAML(s, filename))

	loaded, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, s.Name, loaded.Name)
	assert.Equal(t, s.Instances, loaded.Instances)
	assert.Equal(t, s.Hash(), loaded.Hash())
}

func TestHashTracksContent(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Hash(), b.Hash())

	moved := append([]Instance(nil), a.Instances...)
	moved[0].Position.X++
	c, err := New("moved", moved)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), c.Hash())

	var nilScene *Scene
	assert.Equal(t, 0, nilScene.Len())
	assert.Equal(t, "", nilScene.Hash())
}

func TestExecScript(t *testing.T) {
	src := `
name = "grid"

def build():
    for i in range(3):
        for j in range(2):
            rect(i * 10, j * 20, 8, 16, color = rgba(0.5, 0.5, 1))

build()
rect(0.5, 1.5, 2, 3, "red")
rect(0, 0, 1, 1)
print("built")
`
	s, err := ExecScript("grid.star", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "grid", s.Name)
	require.Equal(t, 8, s.Len())
	assert.Equal(t, Instance{
		Position: canvas.WorldPoint{X: 20, Y: 20},
		Size:     canvas.WorldPoint{X: 8, Y: 16},
		Color:    Color{0.5, 0.5, 1, 1},
	}, s.Instances[5])
	assert.Equal(t, Color{1, 0, 0, 1}, s.Instances[6].Color)
	assert.Equal(t, Color{1, 1, 1, 1}, s.Instances[7].Color)
}

func TestExecScriptErrors(t *testing.T) {
	for _, src := range []string{
		`rect("a", 0, 1, 1)`,
		`rect(0, 0, 1, 1, color = (1, 2, 3))`,
		`rect(0, 0, -1, 1)`,
		`undefined_call()`,
	} {
		_, err := ExecScript("bad.star", []byte(src))
		assert.Error(t, err, src)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("scene.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "live.yaml")
	require.NoError(t, SaveYAML(Default(), filename))

	w, err := NewWatcher(filename, nil)
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("instances: []"), 0o644))
	require.NoError(t, os.WriteFile(filename, []byte(sceneYAML), 0o644))

	select {
	case s := <-w.Scenes:
		assert.Equal(t, "demo", s.Name)
		assert.Equal(t, 4, s.Len())
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
