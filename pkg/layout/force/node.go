package force

// Node is a simulation particle.
//
// Adjacent is directed storage: a node lists only the nodes it points to. The
// attraction computed for an entry is applied to both endpoints, so an edge
// must be listed once (on either side) to be counted once.
//
// Name, Location and Image belong to the renderer. The engine never reads
// them.
type Node struct {
	ID       int
	Pos      Vec
	Disp     Vec
	Adjacent []*Node
	Pinned   bool

	Name     string
	Location string
	Image    any
}

// NewNode returns an unconnected node at pos.
func NewNode(id int, pos Vec) *Node {
	return &Node{ID: id, Pos: pos}
}

// Connect appends targets to n's adjacency list.
func (n *Node) Connect(targets ...*Node) {
	n.Adjacent = append(n.Adjacent, targets...)
}

// Degree returns the number of adjacency entries stored on n.
func (n *Node) Degree() int { return len(n.Adjacent) }

// Edge is a directed adjacency entry identified by node ids.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// NodeState is a read-only copy of the fields a renderer needs.
type NodeState struct {
	ID       int    `json:"id"`
	Pos      Vec    `json:"pos"`
	Pinned   bool   `json:"pinned"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// Snapshot is a copy of all node states and edges taken between steps.
// It shares no memory with the engine.
type Snapshot struct {
	Nodes []NodeState `json:"nodes"`
	Edges []Edge      `json:"edges"`
}

// Bounds returns the axis-aligned bounding box of the snapshot's finite
// positions. Nodes at NaN or infinite positions are ignored; a snapshot with
// no finite position yields two zero vectors.
func (s Snapshot) Bounds() (lo, hi Vec) {
	seeded := false
	for _, n := range s.Nodes {
		if !n.Pos.IsFinite() {
			continue
		}
		if !seeded {
			lo, hi = n.Pos, n.Pos
			seeded = true
			continue
		}
		lo.X, lo.Y = min(lo.X, n.Pos.X), min(lo.Y, n.Pos.Y)
		hi.X, hi.Y = max(hi.X, n.Pos.X), max(hi.Y, n.Pos.Y)
	}
	return lo, hi
}

// Lookup returns the state of the node with the given id.
func (s Snapshot) Lookup(id int) (NodeState, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeState{}, false
}
