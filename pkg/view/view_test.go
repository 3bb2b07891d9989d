package view

import (
	"math"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Scale: 2, PanX: 10, PanY: -5}
	p := force.Vec{X: 3, Y: 4}

	s := tr.ToScreen(p)
	if want := (force.Vec{X: 16, Y: 3}); s != want {
		t.Errorf("ToScreen() = %v, want %v", s, want)
	}
	if got := tr.ToWorld(s); got != p {
		t.Errorf("ToWorld() = %v, want %v", got, p)
	}

	// The zero value behaves as scale 1.
	if got := (Transform{}).ToScreen(p); got != p {
		t.Errorf("zero Transform ToScreen() = %v, want %v", got, p)
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		factor float64
		want   float64
	}{
		{"in", 1, 2, 2},
		{"out", 1, 0.5, 0.5},
		{"max", 4, 10, MaxScale},
		{"min", 0.2, 0.01, MinScale},
		{"zero scale treated as one", 0, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{Scale: tt.start, PanX: 7}
			tr.Zoom(tt.factor)
			if math.Abs(tr.Scale-tt.want) > 1e-12 {
				t.Errorf("Scale = %v, want %v", tr.Scale, tt.want)
			}
			if tr.PanX != 7 {
				t.Errorf("zoom moved the pan to %v", tr.PanX)
			}
		})
	}
}

func TestPan(t *testing.T) {
	tr := Identity()
	tr.Pan(3, -4)
	tr.Pan(1, 1)
	if want := (Transform{Scale: 1, PanX: 4, PanY: -3}); tr != want {
		t.Errorf("Pan() = %+v, want %+v", tr, want)
	}
}

func TestFit(t *testing.T) {
	tr := Fit(force.Vec{X: 0, Y: 0}, force.Vec{X: 100, Y: 50}, 220, 220, 10)
	if math.Abs(tr.Scale-2) > 1e-12 {
		t.Errorf("Scale = %v, want 2", tr.Scale)
	}
	center := tr.ToScreen(force.Vec{X: 50, Y: 25})
	if math.Abs(center.X-110) > 1e-9 || math.Abs(center.Y-110) > 1e-9 {
		t.Errorf("center = %v, want {110 110}", center)
	}

	single := Fit(force.Vec{X: 5, Y: 5}, force.Vec{X: 5, Y: 5}, 80, 40, 2)
	if single.Scale != 1 {
		t.Errorf("single-point Scale = %v, want 1", single.Scale)
	}
	if got, want := single.ToScreen(force.Vec{X: 5, Y: 5}), (force.Vec{X: 40, Y: 20}); got != want {
		t.Errorf("single-point center = %v, want %v", got, want)
	}

	huge := Fit(force.Vec{}, force.Vec{X: 1, Y: 1}, 1000, 1000, 0)
	if huge.Scale != MaxScale {
		t.Errorf("tiny-extent Scale = %v, want %v", huge.Scale, MaxScale)
	}
}

func TestHitTest(t *testing.T) {
	nodes := []force.NodeState{
		{ID: 4, Pos: force.Vec{X: 100, Y: 100}},
		{ID: 9, Pos: force.Vec{X: 130, Y: 100}},
	}

	tests := []struct {
		name   string
		point  force.Vec
		tr     Transform
		radius float64
		wantID int
		wantOK bool
	}{
		{"first match wins", force.Vec{X: 110, Y: 100}, Identity(), 0, 4, true},
		{"boundary is outside", force.Vec{X: 150, Y: 100}, Identity(), 0, 9, true},
		{"miss", force.Vec{X: 300, Y: 300}, Identity(), 0, 0, false},
		{"custom radius", force.Vec{X: 100, Y: 111}, Identity(), 10, 0, false},
		{"scaled radius", force.Vec{X: 50, Y: 74}, Transform{Scale: 0.5}, 0, 4, true},
		{"scaled radius miss", force.Vec{X: 50, Y: 76}, Transform{Scale: 0.5}, 0, 0, false},
		{"panned", force.Vec{X: 200, Y: 100}, Transform{Scale: 1, PanX: 100}, 0, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := HitTest(nodes, tt.point, tt.tr, tt.radius)
			if ok != tt.wantOK {
				t.Fatalf("HitTest() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("HitTest() = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func pair(t *testing.T) (*force.Engine, *force.Node, *force.Node) {
	t.Helper()
	a, b := force.NewNode(0, force.Vec{X: 0, Y: 0}), force.NewNode(1, force.Vec{X: 200, Y: 0})
	a.Connect(b)
	e, err := force.New([]*force.Node{a, b}, nil)
	if err != nil {
		t.Fatalf("force.New: %v", err)
	}
	return e, a, b
}

func mustMove(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("move: %v", err)
	}
}

func TestDragNode(t *testing.T) {
	e, _, b := pair(t)
	tr := Identity()
	d := NewDrag(e, &tr, 0)

	id, ok := d.Press(force.Vec{X: 195, Y: 5})
	if !ok || id != 1 {
		t.Fatalf("Press() = %d, %v; want 1, true", id, ok)
	}
	if !b.Pinned {
		t.Error("pressed node not pinned")
	}

	mustMove(t, d.Move(force.Vec{X: 215, Y: -5}))
	want := force.Vec{X: 220, Y: -10}
	if b.Pos != want {
		t.Errorf("Pos = %v, want %v", b.Pos, want)
	}

	e.Step()
	if b.Pos != want {
		t.Errorf("pinned node moved during drag to %v", b.Pos)
	}

	d.Release()
	if b.Pinned || d.Active() {
		t.Errorf("after Release: pinned=%v active=%v", b.Pinned, d.Active())
	}
	if _, grabbed := d.Selected(); grabbed {
		t.Error("node still selected after Release")
	}
	if tr != Identity() {
		t.Errorf("dragging a node panned the view to %+v", tr)
	}
}

func TestDragFollowsPointerWhenZoomed(t *testing.T) {
	e, _, b := pair(t)
	tr := Transform{Scale: 2}
	d := NewDrag(e, &tr, 0)

	if _, ok := d.Press(force.Vec{X: 400, Y: 0}); !ok {
		t.Fatal("Press() missed node 1")
	}
	mustMove(t, d.MoveBy(20, 10))
	if want := (force.Vec{X: 210, Y: 5}); b.Pos != want {
		t.Errorf("Pos = %v, want %v", b.Pos, want)
	}
	if got, want := tr.ToScreen(b.Pos), (force.Vec{X: 420, Y: 10}); got != want {
		t.Errorf("node on screen at %v, want under the pointer at %v", got, want)
	}
}

func TestDragEmptySpacePans(t *testing.T) {
	e, a, b := pair(t)
	tr := Identity()
	d := NewDrag(e, &tr, 0)

	if _, ok := d.Press(force.Vec{X: 100, Y: 300}); ok {
		t.Fatal("Press() hit a node on empty space")
	}
	mustMove(t, d.Move(force.Vec{X: 130, Y: 280}))
	if want := (Transform{Scale: 1, PanX: 30, PanY: -20}); tr != want {
		t.Errorf("view = %+v, want %+v", tr, want)
	}
	if a.Pinned || b.Pinned {
		t.Error("panning pinned a node")
	}
	if want := (force.Vec{X: 200, Y: 0}); b.Pos != want {
		t.Errorf("panning moved node 1 to %v", b.Pos)
	}
}

func TestDragCancelUnpins(t *testing.T) {
	e, a, _ := pair(t)
	tr := Identity()
	d := NewDrag(e, &tr, 0)

	if _, ok := d.Press(force.Vec{X: 1, Y: 1}); !ok {
		t.Fatal("Press() missed node 0")
	}
	mustMove(t, d.MoveBy(5, 5))
	d.Cancel()
	want := force.Vec{X: 5, Y: 5}
	if a.Pinned || a.Pos != want {
		t.Errorf("after Cancel: pinned=%v pos=%v, want unpinned at %v", a.Pinned, a.Pos, want)
	}

	mustMove(t, d.MoveBy(5, 5))
	if a.Pos != want {
		t.Errorf("move after cancel changed Pos to %v", a.Pos)
	}
}

func TestDragNodeRemovedMidGesture(t *testing.T) {
	e, _, _ := pair(t)
	tr := Identity()
	d := NewDrag(e, &tr, 0)

	if _, ok := d.Press(force.Vec{X: 200, Y: 0}); !ok {
		t.Fatal("Press() missed node 1")
	}
	if err := e.SetNodes([]*force.Node{force.NewNode(0, force.Vec{})}); err != nil {
		t.Fatalf("SetNodes: %v", err)
	}

	err := d.MoveBy(10, 0)
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Fatalf("MoveBy() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
	if d.Active() {
		t.Error("gesture still active after its node left the graph")
	}
	if err := d.MoveBy(10, 0); err != nil {
		t.Errorf("MoveBy() after the gesture ended = %v, want nil", err)
	}
	if tr != Identity() {
		t.Errorf("view panned to %+v", tr)
	}
}

func TestDragSecondPressReleasesFirst(t *testing.T) {
	e, a, b := pair(t)
	tr := Identity()
	d := NewDrag(e, &tr, 0)

	_, _ = d.Press(force.Vec{X: 0, Y: 0})
	if !a.Pinned {
		t.Fatal("first press did not pin node 0")
	}
	_, _ = d.Press(force.Vec{X: 200, Y: 0})
	if a.Pinned || !b.Pinned {
		t.Errorf("pinned = %v, %v; want false, true", a.Pinned, b.Pinned)
	}
}

func TestGrab(t *testing.T) {
	e, a, _ := pair(t)
	tr := Transform{Scale: 1, PanX: 50}
	d := NewDrag(e, &tr, 0)

	if err := d.Grab(0); err != nil {
		t.Fatalf("Grab(0) error = %v", err)
	}
	if !a.Pinned {
		t.Error("Grab did not pin")
	}
	mustMove(t, d.MoveBy(0, 10))
	if want := (force.Vec{X: 0, Y: 10}); a.Pos != want {
		t.Errorf("Pos = %v, want %v", a.Pos, want)
	}
	d.Release()
	if a.Pinned {
		t.Error("Release did not unpin")
	}

	if err := d.Grab(42); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Grab(42) error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
	if d.Active() {
		t.Error("failed Grab left the gesture active")
	}
}
