package view

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// Zoom limits applied by [Transform.Zoom].
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Transform maps world coordinates to screen coordinates:
// screen = pan + world*scale.
type Transform struct {
	Scale float64 `json:"scale"`
	PanX  float64 `json:"pan_x"`
	PanY  float64 `json:"pan_y"`
}

// Identity returns the transform with scale 1 and no pan.
func Identity() Transform { return Transform{Scale: 1} }

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// ToScreen maps a world position to the screen.
func (t Transform) ToScreen(p force.Vec) force.Vec {
	s := t.scale()
	return force.Vec{X: t.PanX + p.X*s, Y: t.PanY + p.Y*s}
}

// ToWorld maps a screen position back to world coordinates.
func (t Transform) ToWorld(p force.Vec) force.Vec {
	s := t.scale()
	return force.Vec{X: (p.X - t.PanX) / s, Y: (p.Y - t.PanY) / s}
}

// Zoom multiplies the scale by factor and clamps it to [MinScale, MaxScale].
// The pan is unchanged, so zooming is anchored at the world origin.
func (t *Transform) Zoom(factor float64) {
	t.Scale = clampScale(t.scale() * factor)
}

// Pan shifts the view by a screen-space delta.
func (t *Transform) Pan(dx, dy float64) {
	t.PanX += dx
	t.PanY += dy
}

// Fit returns the transform that shows the box [lo, hi] centred in a
// width x height viewport with margin on every side. A degenerate box is
// centred at scale 1.
func Fit(lo, hi force.Vec, width, height, margin float64) Transform {
	w, h := hi.X-lo.X, hi.Y-lo.Y
	availW, availH := width-2*margin, height-2*margin
	s := 1.0
	if w > 0 || h > 0 {
		s = math.Inf(1)
		if w > 0 {
			s = availW / w
		}
		if h > 0 {
			s = min(s, availH/h)
		}
		s = clampScale(s)
	}
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	return Transform{Scale: s, PanX: width/2 - cx*s, PanY: height/2 - cy*s}
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return max(MinScale, min(s, MaxScale))
}
