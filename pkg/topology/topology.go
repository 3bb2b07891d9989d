package topology

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// MaxNodes bounds generated graphs. Step is quadratic in the node count.
const MaxNodes = 2000

// Demo labels, carried on every node of [Demo].
const (
	DemoName     = "John"
	DemoLocation = "Porto"
)

// Demo returns the fixed 17-node demonstration graph: 0 -> 1..5, 1 -> 6..7,
// 2 -> 8..9, 3 -> 10..16. All positions are zero; use a placement to seed them.
func Demo() []*force.Node {
	nodes := blank(17)
	for _, n := range nodes {
		n.Name, n.Location = DemoName, DemoLocation
	}
	link(nodes, 0, 1, 2, 3, 4, 5)
	link(nodes, 1, 6, 7)
	link(nodes, 2, 8, 9)
	link(nodes, 3, 10, 11, 12, 13, 14, 15, 16)
	return nodes
}

// Star returns a hub (node 0) pointing at n-1 leaves.
func Star(n int) ([]*force.Node, error) {
	if err := checkSize(n, 1); err != nil {
		return nil, err
	}
	nodes := blank(n)
	for i := 1; i < n; i++ {
		nodes[0].Connect(nodes[i])
	}
	return nodes, nil
}

// Chain returns n nodes linked 0 -> 1 -> ... -> n-1.
func Chain(n int) ([]*force.Node, error) {
	if err := checkSize(n, 1); err != nil {
		return nil, err
	}
	nodes := blank(n)
	for i := 0; i+1 < n; i++ {
		nodes[i].Connect(nodes[i+1])
	}
	return nodes, nil
}

// Ring returns a chain of n nodes whose last node points back at node 0.
func Ring(n int) ([]*force.Node, error) {
	if err := checkSize(n, 3); err != nil {
		return nil, err
	}
	nodes, _ := Chain(n)
	nodes[n-1].Connect(nodes[0])
	return nodes, nil
}

// Grid returns a w x h lattice in row-major order. Each node points right
// and down.
func Grid(w, h int) ([]*force.Node, error) {
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "grid dimensions must be positive, got %dx%d", w, h)
	}
	if err := checkSize(w*h, 1); err != nil {
		return nil, err
	}
	nodes := blank(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := nodes[y*w+x]
			if x+1 < w {
				n.Connect(nodes[y*w+x+1])
			}
			if y+1 < h {
				n.Connect(nodes[(y+1)*w+x])
			}
		}
	}
	return nodes, nil
}

// Tree returns a complete tree with the given branching factor and depth.
// Depth 0 is a single root. Nodes are numbered breadth first.
func Tree(branching, depth int) ([]*force.Node, error) {
	if branching < 1 || depth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidTopology, "tree needs branching >= 1 and depth >= 0, got %dx%d", branching, depth)
	}
	total, level := 1, 1
	for d := 0; d < depth; d++ {
		level *= branching
		total += level
		if total > MaxNodes {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "tree %dx%d exceeds %d nodes", branching, depth, MaxNodes)
		}
	}
	nodes := blank(total)
	for i := 1; i < total; i++ {
		nodes[(i-1)/branching].Connect(nodes[i])
	}
	return nodes, nil
}

// FromEdges builds n nodes and stores each edge on its From node.
func FromEdges(n int, edges []force.Edge) ([]*force.Node, error) {
	if err := checkSize(n, 0); err != nil {
		return nil, err
	}
	nodes := blank(n)
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "edge %d->%d outside 0..%d", e.From, e.To, n-1)
		}
		if e.From == e.To {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "self loop on node %d", e.From)
		}
		nodes[e.From].Connect(nodes[e.To])
	}
	return nodes, nil
}

func blank(n int) []*force.Node {
	nodes := make([]*force.Node, n)
	for i := range nodes {
		nodes[i] = force.NewNode(i, force.Vec{})
		nodes[i].Name = strconv.Itoa(i)
	}
	return nodes
}

func link(nodes []*force.Node, from int, to ...int) {
	for _, t := range to {
		nodes[from].Connect(nodes[t])
	}
}

func checkSize(n, minimum int) error {
	if n < minimum {
		return errors.New(errors.ErrCodeInvalidTopology, "need at least %d nodes, got %d", minimum, n)
	}
	if n > MaxNodes {
		return errors.New(errors.ErrCodeInvalidTopology, "%d nodes exceeds the limit of %d", n, MaxNodes)
	}
	return nil
}

// EdgeCount returns the number of adjacency entries across nodes.
func EdgeCount(nodes []*force.Node) int {
	total := 0
	for _, n := range nodes {
		total += n.Degree()
	}
	return total
}

// Describe returns a short human-readable summary such as "17 nodes, 16 edges".
func Describe(nodes []*force.Node) string {
	return fmt.Sprintf("%d nodes, %d edges", len(nodes), EdgeCount(nodes))
}
