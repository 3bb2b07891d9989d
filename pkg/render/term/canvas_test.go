package term

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/view"
)

func line() force.Snapshot {
	return force.Snapshot{
		Nodes: []force.NodeState{
			{ID: 0, Pos: force.Vec{X: 0, Y: 0}, Name: "a"},
			{ID: 1, Pos: force.Vec{X: 100, Y: 0}, Name: "b"},
		},
		Edges: []force.Edge{{From: 0, To: 1}},
	}
}

func TestRenderFits(t *testing.T) {
	c := Render(line(), Options{Width: 21, Height: 5})
	rows := strings.Split(c.String(), "\n")
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	want := " o" + strings.Repeat(".", 17) + "o"
	if rows[2] != want {
		t.Errorf("row 2 = %q, want %q", rows[2], want)
	}
	for i, r := range rows {
		if i != 2 && r != "" {
			t.Errorf("row %d = %q, want blank", i, r)
		}
	}
}

func TestRenderSkipsNonFiniteNode(t *testing.T) {
	s := force.Snapshot{
		Nodes: []force.NodeState{
			{ID: 0, Pos: force.Vec{X: 0, Y: 0}},
			{ID: 1, Pos: force.Vec{X: 100, Y: 50}},
			{ID: 2, Pos: force.Vec{X: math.NaN(), Y: 3}},
		},
		Edges: []force.Edge{{From: 0, To: 1}, {From: 0, To: 2}},
	}
	c := Render(s, Options{Width: 40, Height: 12})
	if got := strings.Count(c.String(), string(NodeGlyph)); got != 2 {
		t.Fatalf("drew %d nodes, want 2:\n%s", got, c)
	}

	fit := FitView(s, 40, 12)
	s.Nodes = s.Nodes[:2]
	if want := FitView(s, 40, 12); fit != want {
		t.Errorf("FitView() = %+v, want %+v", fit, want)
	}
}

func TestRenderGlyphs(t *testing.T) {
	s := line()
	s.Nodes[1].Pinned = true
	c := Render(s, Options{Width: 21, Height: 5})
	if c.At(19, 2) != PinnedGlyph {
		t.Errorf("pinned glyph = %q", c.At(19, 2))
	}

	c = Render(s, Options{Width: 21, Height: 5, Selected: 1, HasSelected: true})
	if c.At(19, 2) != SelectedGlyph {
		t.Errorf("selected glyph = %q", c.At(19, 2))
	}
	if c.At(1, 2) != NodeGlyph {
		t.Errorf("free glyph = %q", c.At(1, 2))
	}
}

func TestRenderLabels(t *testing.T) {
	c := Render(line(), Options{Width: 30, Height: 5, Labels: true})
	if c.At(1, 2) != NodeGlyph || c.At(3, 2) != 'a' {
		t.Errorf("label missing:\n%s", c)
	}
}

func TestRenderWithView(t *testing.T) {
	tr := view.Transform{Scale: 0.1, PanX: 2, PanY: 2}
	c := Render(line(), Options{Width: 20, Height: 4, View: &tr})
	if c.At(2, 1) != NodeGlyph || c.At(12, 1) != NodeGlyph {
		t.Errorf("nodes not at view positions:\n%s", c)
	}
}

func TestRenderSkipsNonFinite(t *testing.T) {
	s := line()
	s.Nodes[1].Pos = force.Vec{X: math.Inf(1), Y: 0}
	tr := view.Identity()
	c := Render(s, Options{Width: 10, Height: 3, View: &tr})
	if strings.Count(c.String(), string(NodeGlyph)) != 1 {
		t.Errorf("expected one drawn node:\n%s", c)
	}
	if strings.ContainsRune(c.String(), EdgeGlyph) {
		t.Errorf("edge to a non-finite node should be skipped:\n%s", c)
	}
}

func TestRenderEmpty(t *testing.T) {
	c := Render(force.Snapshot{}, Options{Width: 4, Height: 2})
	if c.String() != "\n" {
		t.Errorf("empty render = %q", c.String())
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(5, 5)
	c.Line(0, 0, 4, 4, '*')
	for i := 0; i < 5; i++ {
		if c.At(i, i) != '*' {
			t.Errorf("diagonal cell %d = %q", i, c.At(i, i))
		}
	}

	c = NewCanvas(5, 1)
	c.Line(-100, 0, 2, 0, '-')
	if c.String() != "---" {
		t.Errorf("clipped line = %q", c.String())
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(0, 0)
	c.Set(5, 5, 'x')
	if c.At(5, 5) != 0 {
		t.Error("At outside canvas should be 0")
	}
	c.Text(0, 0, "hello")
	if c.String() != "h" {
		t.Errorf("String() = %q", c.String())
	}
}
