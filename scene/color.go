package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color [4]float32

// ColorFrom converts any image color to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255}
}

// NRGBA returns the color as 8-bit non-premultiplied RGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}

// Premultiplied returns the color with RGB scaled by alpha.
func (c Color) Premultiplied() Color {
	return Color{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

func (c Color) validate() error {
	for _, v := range c {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("color component %v outside [0, 1]", v)
		}
	}
	return nil
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or an SVG color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return ColorFrom(c), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, fmt.Errorf("scene: unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("scene: bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("scene: bad hex color %q: %w", s, err)
	}
	return ColorFrom(color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
}

// UnmarshalYAML accepts a [r, g, b] or [r, g, b, a] list in [0, 1], or any
// string understood by ParseColor.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var vals []float32
		if err := node.Decode(&vals); err != nil {
			return err
		}
		switch len(vals) {
		case 3:
			*c = Color{vals[0], vals[1], vals[2], 1}
		case 4:
			*c = Color{vals[0], vals[1], vals[2], vals[3]}
		default:
			return fmt.Errorf("scene: line %d: color needs 3 or 4 components, got %d", node.Line, len(vals))
		}
		return c.validate()
	}
	return fmt.Errorf("scene: line %d: cannot decode color", node.Line)
}

// MarshalYAML writes the color as a four-element list.
func (c Color) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range c {
		s := strconv.FormatFloat(float64(v), 'g', -1, 32)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s})
	}
	return node, nil
}
