package input

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"quad-canvas/canvas"
)

func TestBatchKeepsOrderAndCapacity(t *testing.T) {
	b := NewBatch(4)
	pan := PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: 1, Y: 2}}
	zoom := ZoomAtScreenPoint{PivotPx: canvas.ScreenPoint{X: 3, Y: 4}, ZoomMultiplier: 2}
	b.Append(pan)
	b.Append(zoom)
	b.Append(pan)

	assert.Equal(t, []Event{pan, zoom, pan}, b.Events())
	capBefore := b.Cap()

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Events())
	assert.Equal(t, capBefore, b.Cap())
}

const replayYAML = `
canvas:
  width: 800
  height: 600
frames:
  - events:
      - type: pan_by_screen_delta
        delta_px: {x: 50, y: 0}
      - type: zoom_at_screen_point
        pivot_px: {x: 100, y: 100}
        zoom_multiplier: 2
  - events: []
`

func TestReplayDecode(t *testing.T) {
	var r Replay
	require.NoError(t, yaml.Unmarshal([]byte(replayYAML), &r))

	assert.Equal(t, CanvasState{Width: 800, Height: 600}, r.Canvas)
	require.Len(t, r.Frames, 2)
	assert.Equal(t, []Event{
		PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: 50}},
		ZoomAtScreenPoint{PivotPx: canvas.ScreenPoint{X: 100, Y: 100}, ZoomMultiplier: 2},
	}, r.Frames[0].Events)
	assert.Empty(t, r.Frames[1].Events)
}

func TestReplayRejectsBadEvents(t *testing.T) {
	for _, doc := range []string{
		"frames: [{events: [{type: spin}]}]",
		"frames: [{events: [{type: pan_by_screen_delta}]}]",
		"frames: [{events: [{type: zoom_at_screen_point, pivot_px: {x: 1, y: 1}}]}]",
	} {
		var r Replay
		assert.Error(t, yaml.Unmarshal([]byte(doc), &r), doc)
	}
}

func TestReplaySaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "replay.yaml")

	r := &Replay{Canvas: CanvasState{Width: 640, Height: 480}}
	r.Record([]Event{PanByScreenDelta{DeltaPx: canvas.ScreenPoint{X: -3, Y: 7}}})
	r.Record(nil)
	r.Record([]Event{ZoomAtScreenPoint{PivotPx: canvas.ScreenPoint{X: 320, Y: 240}, ZoomMultiplier: 0.5}})

	require.NoError(t, SaveReplay(r, filename))
	loaded, err := LoadReplay(filename)
	require.NoError(t, err)

	assert.Equal(t, r.Canvas, loaded.Canvas)
	require.Len(t, loaded.Frames, 3)
	assert.Equal(t, r.Frames[0].Events, loaded.Frames[0].Events)
	assert.Empty(t, loaded.Frames[1].Events)
	assert.Equal(t, r.Frames[2].Events, loaded.Frames[2].Events)
}

func TestPlayerDeliversOneFramePerPoll(t *testing.T) {
	var r Replay
	require.NoError(t, yaml.Unmarshal([]byte(replayYAML), &r))
	p := NewPlayer(&r)
	b := NewBatch(0)

	assert.True(t, p.Poll(b))
	assert.Equal(t, 2, b.Len())
	b.Clear()

	assert.True(t, p.Poll(b))
	assert.Equal(t, 0, b.Len())

	assert.False(t, p.Poll(b))
}
