package place

import (
	"math"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/topology"
)

func positions(nodes []*force.Node) []force.Vec {
	out := make([]force.Vec, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos
	}
	return out
}

func TestRandomDeterministic(t *testing.T) {
	a, b := topology.Demo(), topology.Demo()
	Random{Seed: 7}.Place(a)
	Random{Seed: 7}.Place(b)
	pa, pb := positions(a), positions(b)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("node %d: %v != %v with the same seed", i, pa[i], pb[i])
		}
	}

	c := topology.Demo()
	Random{Seed: 8}.Place(c)
	same := true
	for i, p := range positions(c) {
		if p != pa[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical placements")
	}
}

func TestRandomIntegerBox(t *testing.T) {
	nodes := topology.Demo()
	Random{Seed: 1, Size: 50}.Place(nodes)
	for _, n := range nodes {
		for _, v := range []float64{n.Pos.X, n.Pos.Y} {
			if v < 0 || v >= 50 || v != math.Trunc(v) {
				t.Errorf("node %d coordinate %v outside integer box [0,50)", n.ID, v)
			}
		}
	}

	nodes = topology.Demo()
	Random{Seed: 1}.Place(nodes)
	for _, n := range nodes {
		if n.Pos.X >= DefaultSize || n.Pos.Y >= DefaultSize {
			t.Errorf("node %d at %v outside default box", n.ID, n.Pos)
		}
	}
}

func TestCircle(t *testing.T) {
	nodes, _ := topology.Ring(4)
	Circle{Radius: 100}.Place(nodes)
	want := []force.Vec{{X: 100, Y: 0}, {X: 0, Y: 100}, {X: -100, Y: 0}, {X: 0, Y: -100}}
	for i, n := range nodes {
		if math.Abs(n.Pos.X-want[i].X) > 1e-9 || math.Abs(n.Pos.Y-want[i].Y) > 1e-9 {
			t.Errorf("node %d at %v, want %v", i, n.Pos, want[i])
		}
	}

	Circle{}.Place(nil)
}

func TestNoise(t *testing.T) {
	a, b := topology.Demo(), topology.Demo()
	Noise{Seed: 3, Size: 200}.Place(a)
	Noise{Seed: 3, Size: 200}.Place(b)

	distinct := make(map[force.Vec]bool)
	for i, n := range a {
		if n.Pos != b[i].Pos {
			t.Fatalf("node %d: noise placement not deterministic", i)
		}
		if n.Pos.X < 0 || n.Pos.X > 200 || n.Pos.Y < 0 || n.Pos.Y > 200 {
			t.Errorf("node %d at %v outside [0,200]", i, n.Pos)
		}
		distinct[n.Pos] = true
	}
	if len(distinct) < len(a)/2 {
		t.Errorf("only %d distinct positions for %d nodes", len(distinct), len(a))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "random"},
		{"random", "random"},
		{"Circle", "circle"},
		{"noise", "noise"},
	}
	for _, tt := range tests {
		s, err := New(tt.name, 1, 400)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}

	if _, err := New("spiral", 1, 400); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(spiral) error = %v, want INVALID_INPUT", err)
	}
}
