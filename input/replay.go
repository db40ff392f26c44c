package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quad-canvas/canvas"
)

// Event type tags used in replay files.
const (
	TypePanByScreenDelta  = "pan_by_screen_delta"
	TypeZoomAtScreenPoint = "zoom_at_screen_point"
)

type pointState struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type eventState struct {
	Type           string      `yaml:"type"`
	DeltaPx        *pointState `yaml:"delta_px,omitempty"`
	PivotPx        *pointState `yaml:"pivot_px,omitempty"`
	ZoomMultiplier *float32    `yaml:"zoom_multiplier,omitempty"`
}

// Frame is the batch of events captured for one tick.
type Frame struct {
	Events []Event
}

type frameState struct {
	Events []eventState `yaml:"events"`
}

// CanvasState is the canvas size a replay was recorded at.
type CanvasState struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Replay is a recorded sequence of per-tick event batches.
type Replay struct {
	Canvas CanvasState `yaml:"canvas"`
	Frames []Frame     `yaml:"frames"`
}

// Record appends a copy of events as the next frame.
func (r *Replay) Record(events []Event) {
	r.Frames = append(r.Frames, Frame{Events: append([]Event(nil), events...)})
}

// MarshalYAML implements yaml.Marshaler.
func (f Frame) MarshalYAML() (interface{}, error) {
	st := frameState{Events: make([]eventState, 0, len(f.Events))}
	for _, e := range f.Events {
		switch ev := e.(type) {
		case PanByScreenDelta:
			st.Events = append(st.Events, eventState{
				Type:    TypePanByScreenDelta,
				DeltaPx: &pointState{X: ev.DeltaPx.X, Y: ev.DeltaPx.Y},
			})
		case ZoomAtScreenPoint:
			m := ev.ZoomMultiplier
			st.Events = append(st.Events, eventState{
				Type:           TypeZoomAtScreenPoint,
				PivotPx:        &pointState{X: ev.PivotPx.X, Y: ev.PivotPx.Y},
				ZoomMultiplier: &m,
			})
		default:
			return nil, fmt.Errorf("input: cannot encode event %T", e)
		}
	}
	return st, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Frame) UnmarshalYAML(node *yaml.Node) error {
	var st frameState
	if err := node.Decode(&st); err != nil {
		return err
	}
	f.Events = make([]Event, 0, len(st.Events))
	for i, es := range st.Events {
		switch es.Type {
		case TypePanByScreenDelta:
			if es.DeltaPx == nil {
				return fmt.Errorf("input: event %d: %s without delta_px", i, es.Type)
			}
			f.Events = append(f.Events, PanByScreenDelta{
				DeltaPx: canvas.ScreenPoint{X: es.DeltaPx.X, Y: es.DeltaPx.Y},
			})
		case TypeZoomAtScreenPoint:
			if es.PivotPx == nil || es.ZoomMultiplier == nil {
				return fmt.Errorf("input: event %d: %s needs pivot_px and zoom_multiplier", i, es.Type)
			}
			f.Events = append(f.Events, ZoomAtScreenPoint{
				PivotPx:        canvas.ScreenPoint{X: es.PivotPx.X, Y: es.PivotPx.Y},
				ZoomMultiplier: *es.ZoomMultiplier,
			})
		default:
			return fmt.Errorf("input: event %d: unknown type %q", i, es.Type)
		}
	}
	return nil
}

// LoadReplay reads a replay file.
func LoadReplay(filename string) (*Replay, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var r Replay
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("input: parse %s: %w", filename, err)
	}
	return &r, nil
}

// SaveReplay writes r to filename.
func SaveReplay(r *Replay, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Player feeds a replay into a batch one frame per Poll.
type Player struct {
	replay *Replay
	next   int
}

// NewPlayer returns a player positioned at the first frame.
func NewPlayer(r *Replay) *Player {
	return &Player{replay: r}
}

// Poll appends the next frame's events to b. It reports false once every
// frame has been delivered.
func (p *Player) Poll(b *Batch) bool {
	if p.next >= len(p.replay.Frames) {
		return false
	}
	for _, e := range p.replay.Frames[p.next].Events {
		b.Append(e)
	}
	p.next++
	return true
}
