package ui

import (
	"fmt"
	"strings"

	"quad-canvas/canvas"
	"quad-canvas/scene"
)

// Status is the HUD text for the current frame.
func Status(view canvas.View, s *scene.Scene, cursor canvas.ScreenPoint, fps float64) string {
	var b strings.Builder
	b.WriteString(view.String())
	world := view.ScreenToWorld(cursor)
	fmt.Fprintf(&b, "\ncursor (%.1f, %.1f)", world.X, world.Y)
	if s != nil {
		fmt.Fprintf(&b, "\nscene %s: %d instances", s.Name, s.Len())
	}
	fmt.Fprintf(&b, "\n%.0f fps", fps)
	return b.String()
}
