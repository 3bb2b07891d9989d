package view

import "github.com/matzehuels/forcegraph/pkg/layout/force"

// DefaultHitRadius is the touch radius around a node in world units.
const DefaultHitRadius = 50.0

// HitTest returns the id of the first node, in iteration order, whose circle
// of radius*Scale around its screen position strictly contains the screen
// point. A radius <= 0 means [DefaultHitRadius].
func HitTest(nodes []force.NodeState, screen force.Vec, t Transform, radius float64) (int, bool) {
	if radius <= 0 {
		radius = DefaultHitRadius
	}
	r := radius * t.scale()
	for _, n := range nodes {
		c := t.ToScreen(n.Pos)
		dx, dy := screen.X-c.X, screen.Y-c.Y
		if dx*dx+dy*dy < r*r {
			return n.ID, true
		}
	}
	return 0, false
}
