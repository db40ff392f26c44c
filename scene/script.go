package scene

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"

	"quad-canvas/canvas"
)

// MaxScriptSteps bounds the work a scene script may do.
const MaxScriptSteps = 50_000_000

// LoadScript runs a Starlark scene script.
func LoadScript(filename string) (*Scene, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ExecScript(filename, src)
}

// ExecScript runs Starlark source that builds a scene with the predeclared
// builtins:
//
//	rect(x, y, w, h, color="white")  adds an instance
//	rgba(r, g, b, a=1.0)             returns a color tuple
//
// A global named "name" overrides the scene name. Loops must live inside a
// function; Starlark does not allow them at top level.
func ExecScript(filename string, src []byte) (*Scene, error) {
	var instances []Instance
	logger := slog.Default().With("script", filepath.Base(filename))

	rect := starlark.NewBuiltin("rect", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x, y, w, h, col starlark.Value
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &x, "y", &y, "w", &w, "h", &h, "color?", &col); err != nil {
			return nil, err
		}
		vals, err := toFloats(fn.Name(), x, y, w, h)
		if err != nil {
			return nil, err
		}
		c := Color{1, 1, 1, 1}
		if col != nil && col != starlark.None {
			if c, err = toColor(col); err != nil {
				return nil, fmt.Errorf("%s: %w", fn.Name(), err)
			}
		}
		instances = append(instances, Instance{
			Position: canvas.WorldPoint{X: vals[0], Y: vals[1]},
			Size:     canvas.WorldPoint{X: vals[2], Y: vals[3]},
			Color:    c,
		})
		return starlark.None, nil
	})

	rgba := starlark.NewBuiltin("rgba", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var r, g, b starlark.Value
		var a starlark.Value = starlark.Float(1)
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "r", &r, "g", &g, "b", &b, "a?", &a); err != nil {
			return nil, err
		}
		if _, err := toFloats(fn.Name(), r, g, b, a); err != nil {
			return nil, err
		}
		return starlark.Tuple{r, g, b, a}, nil
	})

	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { logger.Info(msg) },
	}
	thread.SetMaxExecutionSteps(MaxScriptSteps)

	globals, err := starlark.ExecFile(thread, filename, src, starlark.StringDict{
		"rect": rect,
		"rgba": rgba,
	})
	if err != nil {
		return nil, fmt.Errorf("scene script %s: %w", filename, err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if v, ok := globals["name"]; ok {
		if s, ok := starlark.AsString(v); ok {
			name = s
		}
	}
	return New(name, instances)
}

func toFloats(fnName string, vals ...starlark.Value) ([]float32, error) {
	out := make([]float32, len(vals))
	for i, v := range vals {
		f, ok := starlark.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: got %s, want number", fnName, i+1, v.Type())
		}
		out[i] = float32(f)
	}
	return out, nil
}

func toColor(v starlark.Value) (Color, error) {
	if s, ok := starlark.AsString(v); ok {
		return ParseColor(s)
	}
	seq, ok := v.(starlark.Indexable)
	if !ok {
		return Color{}, fmt.Errorf("color: got %s, want string or sequence", v.Type())
	}
	n := seq.Len()
	if n != 3 && n != 4 {
		return Color{}, fmt.Errorf("color: need 3 or 4 components, got %d", n)
	}
	c := Color{0, 0, 0, 1}
	for i := 0; i < n; i++ {
		f, ok := starlark.AsFloat(seq.Index(i))
		if !ok {
			return Color{}, fmt.Errorf("color: component %d is %s", i, seq.Index(i).Type())
		}
		c[i] = float32(f)
	}
	return c, c.validate()
}
