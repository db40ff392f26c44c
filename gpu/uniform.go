// Package gpu defines the memory layouts shared between the host and the
// renderers, and the vertex stage that consumes them.
package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"quad-canvas/canvas"
	"quad-canvas/transform"
)

// ErrEmptyCanvas is returned when a uniform is built for a canvas with no area.
var ErrEmptyCanvas = errors.New("gpu: empty canvas")

// CameraUniformSize is the size of an encoded CameraUniform.
//
// Layout (WGSL uniform address space, vec2<f32> aligned to 8, struct size
// rounded up to 16):
//
//	offset  0: pan    vec2<f32>
//	offset  8: zoom   f32
//	offset 12: pad    f32
//	offset 16: canvas vec2<f32>
//	offset 24: pad    vec2<f32>
const CameraUniformSize = 32

// CameraUniform is the GPU-visible projection of a canvas.View.
type CameraUniform struct {
	Pan    [2]float32
	Zoom   float32
	_      float32
	Canvas [2]float32
	_      [2]float32
}

// NewCameraUniform builds the uniform for view on a canvas of the given size.
func NewCameraUniform(view canvas.View, size transform.Size) (CameraUniform, error) {
	if size.Empty() {
		return CameraUniform{}, fmt.Errorf("%w: %vx%v", ErrEmptyCanvas, size.Width, size.Height)
	}
	if !view.Valid() {
		return CameraUniform{}, fmt.Errorf("gpu: invalid view %v", view)
	}
	return CameraUniform{
		Pan:    [2]float32{view.Pan.X, view.Pan.Y},
		Zoom:   view.Zoom,
		Canvas: [2]float32{size.Width, size.Height},
	}, nil
}

// View returns the camera view encoded in u.
func (u CameraUniform) View() canvas.View {
	return canvas.View{Pan: canvas.WorldPoint{X: u.Pan[0], Y: u.Pan[1]}, Zoom: u.Zoom}
}

// Size returns the canvas size encoded in u.
func (u CameraUniform) Size() transform.Size {
	return transform.Size{Width: u.Canvas[0], Height: u.Canvas[1]}
}

// Marshal encodes u in little-endian order with zeroed padding.
func (u CameraUniform) Marshal() []byte {
	return u.AppendBinary(make([]byte, 0, CameraUniformSize))
}

// AppendBinary appends the encoding of u to dst.
func (u CameraUniform) AppendBinary(dst []byte) []byte {
	dst = appendFloat32(dst, u.Pan[0], u.Pan[1], u.Zoom, 0)
	return appendFloat32(dst, u.Canvas[0], u.Canvas[1], 0, 0)
}

// UnmarshalCameraUniform decodes a uniform written by Marshal.
func UnmarshalCameraUniform(b []byte) (CameraUniform, error) {
	if len(b) < CameraUniformSize {
		return CameraUniform{}, fmt.Errorf("gpu: camera uniform needs %d bytes, got %d", CameraUniformSize, len(b))
	}
	return CameraUniform{
		Pan:    [2]float32{float32At(b, 0), float32At(b, 4)},
		Zoom:   float32At(b, 8),
		Canvas: [2]float32{float32At(b, 16), float32At(b, 20)},
	}, nil
}

// KageUniforms returns the uniform map for the Kage shaders in this package.
// extra entries are copied in as well.
func (u CameraUniform) KageUniforms(extra map[string]any) map[string]any {
	m := map[string]any{
		"Pan":    []float32{u.Pan[0], u.Pan[1]},
		"Zoom":   u.Zoom,
		"Canvas": []float32{u.Canvas[0], u.Canvas[1]},
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func appendFloat32(dst []byte, vals ...float32) []byte {
	for _, v := range vals {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

func float32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
