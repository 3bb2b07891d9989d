package force

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Engine owns a node collection and advances its layout one step at a time.
//
// The zero value is not usable; use [New]. Engine is not safe for concurrent
// use: callers that pin, move or replace nodes from another goroutine must
// serialize those calls with Step.
type Engine struct {
	cfg         Config
	nodes       []*Node
	index       map[int]*Node
	k           float64
	maxDisplace float64
}

// New creates an engine over nodes. A nil cfg means [DefaultConfig].
//
// Returns an INVALID_CONFIG error for a config that fails [Config.Validate],
// and INVALID_GRAPH when ids repeat, a node is nil, or an adjacency entry
// points outside nodes.
func New(nodes []*Node, cfg *Config) (*Engine, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: c, maxDisplace: c.MaxDisplace()}
	if err := e.SetNodes(nodes); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// K returns the current repulsion/attraction scale.
func (e *Engine) K() float64 { return e.k }

// MaxDisplace returns the configured displacement ceiling before the speed
// factor is applied.
func (e *Engine) MaxDisplace() float64 { return e.maxDisplace }

// Len returns the number of nodes.
func (e *Engine) Len() int { return len(e.nodes) }

// Nodes returns the node collection in iteration order. The slice and the
// nodes are owned by the engine.
func (e *Engine) Nodes() []*Node { return e.nodes }

// SetNodes replaces the node collection and recomputes K for the new size.
// On error the previous collection is kept.
func (e *Engine) SetNodes(nodes []*Node) error {
	index, err := indexNodes(nodes)
	if err != nil {
		return err
	}
	e.nodes = nodes
	e.index = index
	e.k = e.cfg.K(len(nodes))
	return nil
}

func indexNodes(nodes []*Node) (map[int]*Node, error) {
	index := make(map[int]*Node, len(nodes))
	for i, n := range nodes {
		if n == nil {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node at index %d is nil", i)
		}
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %d", n.ID)
		}
		index[n.ID] = n
	}
	for _, n := range nodes {
		for _, u := range n.Adjacent {
			if u == nil || index[u.ID] != u {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "node %d is adjacent to a node outside the collection", n.ID)
			}
		}
	}
	return index, nil
}

// Node returns the node with the given id.
func (e *Engine) Node(id int) (*Node, bool) {
	n, ok := e.index[id]
	return n, ok
}

// Pin excludes the node from position updates.
func (e *Engine) Pin(id int) error { return e.setPinned(id, true) }

// Unpin returns the node to the simulation.
func (e *Engine) Unpin(id int) error { return e.setPinned(id, false) }

func (e *Engine) setPinned(id int, pinned bool) error {
	n, ok := e.index[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
	}
	n.Pinned = pinned
	return nil
}

// MoveTo sets a node's position directly, as a drag does.
func (e *Engine) MoveTo(id int, pos Vec) error {
	n, ok := e.index[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
	}
	n.Pos = pos
	return nil
}

// Edges returns every adjacency entry in iteration order.
func (e *Engine) Edges() []Edge {
	var edges []Edge
	for _, v := range e.nodes {
		for _, u := range v.Adjacent {
			edges = append(edges, Edge{From: v.ID, To: u.ID})
		}
	}
	return edges
}

// Snapshot copies the renderer-facing state of every node.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Nodes: make([]NodeState, len(e.nodes)),
		Edges: e.Edges(),
	}
	for i, n := range e.nodes {
		s.Nodes[i] = NodeState{ID: n.ID, Pos: n.Pos, Pinned: n.Pinned, Name: n.Name, Location: n.Location}
	}
	return s
}

// Step advances the layout by one iteration.
//
// The passes run in a fixed order over the whole collection: reset,
// repulsion, attraction, gravity, damping, position update. Pinned nodes get
// a displacement but keep their position. Pairs at zero distance contribute
// nothing, and a displacement whose norm is not positive (zero or NaN) moves
// nothing. Step never fails; overflowing input can yield infinite positions
// unless GuardNonFinite is set.
func (e *Engine) Step() {
	if len(e.nodes) == 0 {
		return
	}
	for _, v := range e.nodes {
		v.Disp = Vec{}
	}
	e.repulse()
	e.attract()
	e.gravitate()
	e.damp()
	e.move()
}

// repulse accumulates k²/d on every ordered pair, each node from its own side.
func (e *Engine) repulse() {
	k2 := e.k * e.k
	for i, v := range e.nodes {
		for j, u := range e.nodes {
			if i == j {
				continue
			}
			delta := v.Pos.Sub(u.Pos)
			d := delta.Len()
			if d > 0 {
				v.Disp = v.Disp.Add(delta.Div(d).Scale(k2 / d))
			}
		}
	}
}

// attract pulls both endpoints of every adjacency entry together with d²/k.
func (e *Engine) attract() {
	for _, v := range e.nodes {
		for _, u := range v.Adjacent {
			delta := v.Pos.Sub(u.Pos)
			d := delta.Len()
			if d > 0 {
				f := delta.Div(d).Scale(d * d / e.k)
				v.Disp = v.Disp.Sub(f)
				u.Disp = u.Disp.Add(f)
			}
		}
	}
}

// gravitate pulls toward the origin. In index mode the factor grows with the
// node's position in the collection, so the first node feels none.
func (e *Engine) gravitate() {
	base := gravityScale * e.k * e.cfg.Gravity
	for i, v := range e.nodes {
		mag := v.Disp.Len()
		if !(mag > 0) {
			continue
		}
		gf := base
		if e.cfg.GravityMode == GravityIndex {
			gf *= float64(i)
		}
		v.Disp = v.Disp.Sub(v.Pos.Scale(gf).Div(mag))
	}
}

func (e *Engine) damp() {
	for _, v := range e.nodes {
		v.Disp = v.Disp.Scale(e.cfg.Speed).Div(SpeedDivisor)
	}
}

func (e *Engine) move() {
	limit := e.maxDisplace * (e.cfg.Speed / SpeedDivisor)
	for _, v := range e.nodes {
		mag := v.Disp.Len()
		if !(mag > 0) || v.Pinned {
			continue
		}
		step := v.Disp
		if e.cfg.Update == UpdateCapped {
			step = step.Div(mag)
		}
		next := v.Pos.Add(step.Scale(math.Min(mag, limit)))
		if e.cfg.GuardNonFinite && !next.IsFinite() {
			continue
		}
		v.Pos = next
	}
}
