// Package place assigns initial positions to a node collection.
//
// Every strategy is deterministic for its inputs. Randomness is seeded
// explicitly and never reaches the layout engine.
package place

import (
	"math"
	"math/rand/v2"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// DefaultSize is the side of the square the demo graph is scattered in.
const DefaultSize = 400

// Strategy positions nodes in place.
type Strategy interface {
	Place(nodes []*force.Node)
	Name() string
}

// Random scatters nodes on integer coordinates in [0, size) x [0, size).
type Random struct {
	Seed uint64
	Size int
}

func (r Random) Name() string { return "random" }

func (r Random) Place(nodes []*force.Node) {
	size := r.Size
	if size <= 0 {
		size = DefaultSize
	}
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed^0xdeadbeef))
	for _, n := range nodes {
		n.Pos = force.Vec{X: float64(rng.IntN(size)), Y: float64(rng.IntN(size))}
	}
}

// Circle spaces nodes evenly on a circle around the origin, starting at
// angle zero.
type Circle struct {
	Radius float64
}

func (c Circle) Name() string { return "circle" }

func (c Circle) Place(nodes []*force.Node) {
	r := c.Radius
	if r <= 0 {
		r = DefaultSize / 2
	}
	step := 2 * math.Pi / float64(max(len(nodes), 1))
	for i, n := range nodes {
		a := step * float64(i)
		n.Pos = force.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
}

// Noise samples an opensimplex field so that neighbouring ids land near
// each other, giving a smoother start than [Random].
type Noise struct {
	Seed  int64
	Size  float64
	Scale float64
}

func (s Noise) Name() string { return "noise" }

func (s Noise) Place(nodes []*force.Node) {
	size, scale := s.Size, s.Scale
	if size <= 0 {
		size = DefaultSize
	}
	if scale <= 0 {
		scale = 0.37
	}
	field := opensimplex.NewNormalized(s.Seed)
	for i, n := range nodes {
		t := float64(i) * scale
		n.Pos = force.Vec{
			X: field.Eval2(t, 0) * size,
			Y: field.Eval2(0, t+100) * size,
		}
	}
}

// Names lists the strategies accepted by [New].
var Names = []string{"random", "circle", "noise"}

// New returns the named strategy. size is the box side for random and
// noise placement and the diameter for circle placement.
func New(name string, seed uint64, size float64) (Strategy, error) {
	switch strings.ToLower(name) {
	case "random", "":
		return Random{Seed: seed, Size: int(size)}, nil
	case "circle":
		return Circle{Radius: size / 2}, nil
	case "noise":
		return Noise{Seed: int64(seed), Size: size}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown placement %q (want one of %s)", name, strings.Join(Names, ", "))
}
