package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quad-canvas/canvas"
)

type PointState struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type InstanceState struct {
	Position PointState `yaml:"position"`
	Size     PointState `yaml:"size"`
	Color    Color      `yaml:"color"`
}

type SceneState struct {
	Name      string          `yaml:"name"`
	Instances []InstanceState `yaml:"instances"`
}

// Parse decodes a YAML scene document.
func Parse(data []byte, name string) (*Scene, error) {
	var state SceneState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	if state.Name != "" {
		name = state.Name
	}
	instances := make([]Instance, 0, len(state.Instances))
	for _, is := range state.Instances {
		instances = append(instances, Instance{
			Position: canvas.WorldPoint{X: is.Position.X, Y: is.Position.Y},
			Size:     canvas.WorldPoint{X: is.Size.X, Y: is.Size.Y},
			Color:    is.Color,
		})
	}
	return New(name, instances)
}

// LoadYAML reads a YAML scene file.
func LoadYAML(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
}

// SaveYAML writes s as a YAML scene file.
func SaveYAML(s *Scene, filename string) error {
	state := SceneState{Name: s.Name}
	for _, inst := range s.Instances {
		state.Instances = append(state.Instances, InstanceState{
			Position: PointState{X: inst.Position.X, Y: inst.Position.Y},
			Size:     PointState{X: inst.Size.X, Y: inst.Size.Y},
			Color:    inst.Color,
		})
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return err
	}
	return enc.Close()
}
