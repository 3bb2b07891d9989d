package view

import (
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// Graph is the part of the layout engine a drag needs. *force.Engine
// satisfies it.
type Graph interface {
	Snapshot() force.Snapshot
	Node(id int) (*force.Node, bool)
	Pin(id int) error
	Unpin(id int) error
	MoveTo(id int, pos force.Vec) error
}

// Drag tracks one pointer gesture. Pressing on a node pins it and moves it
// with the pointer until release; pressing on empty space pans the view.
//
// Drag is not safe for concurrent use. Callers that step the engine on
// another goroutine must hold the same lock around Step and Drag methods.
type Drag struct {
	g      Graph
	view   *Transform
	radius float64

	active   bool
	selected int
	grabbed  bool
	last     force.Vec
}

// NewDrag returns a controller that pins nodes of g and pans view.
// A radius <= 0 means [DefaultHitRadius].
func NewDrag(g Graph, view *Transform, radius float64) *Drag {
	return &Drag{g: g, view: view, radius: radius}
}

// Press starts a gesture at a screen point. It returns the id of the pinned
// node, if the point hit one.
func (d *Drag) Press(screen force.Vec) (int, bool) {
	d.release()
	d.active = true
	d.last = screen

	id, ok := HitTest(d.g.Snapshot().Nodes, screen, *d.view, d.radius)
	if !ok {
		return 0, false
	}
	return id, d.grab(id)
}

// Grab starts a gesture on a known node without hit testing, as keyboard
// selection does. The pointer is placed on the node's screen position.
func (d *Drag) Grab(id int) error {
	d.release()
	n, ok := d.g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
	}
	if err := d.g.Pin(id); err != nil {
		return err
	}
	d.active = true
	d.last = d.view.ToScreen(n.Pos)
	d.selected, d.grabbed = id, true
	return nil
}

func (d *Drag) grab(id int) bool {
	if err := d.g.Pin(id); err != nil {
		return false
	}
	d.selected, d.grabbed = id, true
	return true
}

// Move continues the gesture to a new screen point. A grabbed node follows
// the pointer; otherwise the view pans by the pointer delta.
//
// If the grabbed node has left the graph, the gesture ends and Move returns
// an UNKNOWN_NODE error.
func (d *Drag) Move(screen force.Vec) error {
	if !d.active {
		return nil
	}
	delta := screen.Sub(d.last)
	d.last = screen

	if !d.grabbed {
		d.view.Pan(delta.X, delta.Y)
		return nil
	}
	id := d.selected
	n, ok := d.g.Node(id)
	if !ok {
		d.active, d.grabbed, d.selected = false, false, 0
		return errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
	}
	return d.g.MoveTo(id, n.Pos.Add(delta.Div(d.view.scale())))
}

// MoveBy continues the gesture by a screen-space delta.
func (d *Drag) MoveBy(dx, dy float64) error {
	return d.Move(d.last.Add(force.Vec{X: dx, Y: dy}))
}

// Release ends the gesture and unpins the grabbed node.
func (d *Drag) Release() { d.release() }

// Cancel aborts the gesture. The node keeps its dragged position and is
// unpinned, the same as [Drag.Release].
func (d *Drag) Cancel() { d.release() }

func (d *Drag) release() {
	if d.grabbed {
		_ = d.g.Unpin(d.selected)
	}
	d.active, d.grabbed, d.selected = false, false, 0
}

// Selected returns the node being dragged.
func (d *Drag) Selected() (int, bool) {
	return d.selected, d.grabbed
}

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool { return d.active }
