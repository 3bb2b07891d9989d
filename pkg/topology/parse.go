package topology

import (
	"strconv"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// Kinds lists the names accepted by [Parse], for flag help and completion.
var Kinds = []string{"demo", "star", "chain", "ring", "grid", "tree"}

// Parse builds a topology from a short description:
//
//	demo        the 17-node demonstration graph
//	star:12     hub with 11 leaves
//	chain:8     path of 8 nodes
//	ring:8      cycle of 8 nodes
//	grid:4x3    4 wide, 3 high
//	tree:2x3    branching 2, depth 3
func Parse(spec string) ([]*force.Node, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(strings.ToLower(spec)), ":")
	switch kind {
	case "demo", "":
		if hasArg {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "demo takes no argument, got %q", spec)
		}
		return Demo(), nil
	case "star", "chain", "ring":
		n, err := parseInt(spec, arg)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "star":
			return Star(n)
		case "chain":
			return Chain(n)
		default:
			return Ring(n)
		}
	case "grid", "tree":
		a, b, err := parsePair(spec, arg)
		if err != nil {
			return nil, err
		}
		if kind == "grid" {
			return Grid(a, b)
		}
		return Tree(a, b)
	}
	return nil, errors.New(errors.ErrCodeInvalidTopology, "unknown topology %q (want one of %s)", spec, strings.Join(Kinds, ", "))
}

func parseInt(spec, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidTopology, err, "topology %q: expected a number, got %q", spec, s)
	}
	return n, nil
}

func parsePair(spec, s string) (int, int, error) {
	as, bs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidTopology, "topology %q: expected AxB", spec)
	}
	a, err := parseInt(spec, as)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseInt(spec, bs)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
