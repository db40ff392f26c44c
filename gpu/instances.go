package gpu

import (
	"fmt"

	"quad-canvas/canvas"
	"quad-canvas/scene"
)

// InstanceStride is the size of one encoded instance record.
//
//	offset  0: position vec2<f32>
//	offset  8: size     vec2<f32>
//	offset 16: color    vec4<f32>
const InstanceStride = 32

// InstanceBuffer holds the encoded instance records of a scene. It is only
// rewritten when the scene content changes.
type InstanceBuffer struct {
	data   []byte
	count  int
	hash   string
	loaded bool
}

// Upload encodes s into the buffer unless the buffer already holds the same
// content. It reports whether the buffer was rewritten.
func (b *InstanceBuffer) Upload(s *scene.Scene) bool {
	if b.loaded && b.hash == s.Hash() {
		return false
	}
	b.data = b.data[:0]
	if s != nil {
		for _, inst := range s.Instances {
			b.data = appendInstance(b.data, inst)
		}
	}
	b.count = s.Len()
	b.hash = s.Hash()
	b.loaded = true
	return true
}

// Len returns the number of records.
func (b *InstanceBuffer) Len() int { return b.count }

// Bytes returns the encoded records, InstanceStride bytes each.
func (b *InstanceBuffer) Bytes() []byte { return b.data }

// At decodes record i.
func (b *InstanceBuffer) At(i int) scene.Instance {
	return decodeInstance(b.data[i*InstanceStride:])
}

// DecodeInstances decodes a buffer written by InstanceBuffer.
func DecodeInstances(data []byte) ([]scene.Instance, error) {
	if len(data)%InstanceStride != 0 {
		return nil, fmt.Errorf("gpu: instance data length %d is not a multiple of %d", len(data), InstanceStride)
	}
	out := make([]scene.Instance, 0, len(data)/InstanceStride)
	for off := 0; off < len(data); off += InstanceStride {
		out = append(out, decodeInstance(data[off:]))
	}
	return out, nil
}

func appendInstance(dst []byte, inst scene.Instance) []byte {
	return appendFloat32(dst,
		inst.Position.X, inst.Position.Y,
		inst.Size.X, inst.Size.Y,
		inst.Color[0], inst.Color[1], inst.Color[2], inst.Color[3],
	)
}

func decodeInstance(b []byte) scene.Instance {
	return scene.Instance{
		Position: canvas.WorldPoint{X: float32At(b, 0), Y: float32At(b, 4)},
		Size:     canvas.WorldPoint{X: float32At(b, 8), Y: float32At(b, 12)},
		Color:    scene.Color{float32At(b, 16), float32At(b, 20), float32At(b, 24), float32At(b, 28)},
	}
}
