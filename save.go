package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quad-canvas/canvas"
)

// StateFile is where Ctrl+S writes the session.
const StateFile = "state.yaml"

type CameraState struct {
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
	Zoom float32 `yaml:"zoom"`
}

// AppState is the part of a session worth restoring: the scene that was
// open and where the camera was looking.
type AppState struct {
	Scene  string      `yaml:"scene,omitempty"`
	Camera CameraState `yaml:"camera"`
}

func (s AppState) View() (canvas.View, error) {
	v := canvas.View{Pan: canvas.WorldPoint{X: s.Camera.X, Y: s.Camera.Y}, Zoom: s.Camera.Zoom}
	if !v.Valid() {
		return canvas.View{}, fmt.Errorf("state: invalid camera %v", v)
	}
	return v, nil
}

func SaveState(view canvas.View, scenePath, filename string) error {
	state := AppState{
		Scene:  scenePath,
		Camera: CameraState{X: view.Pan.X, Y: view.Pan.Y, Zoom: view.Zoom},
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

func LoadState(filename string) (AppState, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return AppState{}, err
	}
	var state AppState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return AppState{}, fmt.Errorf("%s: %w", filename, err)
	}
	return state, nil
}
