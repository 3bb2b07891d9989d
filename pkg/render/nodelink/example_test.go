package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	a := force.NewNode(0, force.Vec{X: 0, Y: 0})
	b := force.NewNode(1, force.Vec{X: 40, Y: 30})
	a.Connect(b)
	e, _ := force.New([]*force.Node{a, b}, nil)

	dot := nodelink.ToDOT(e.Snapshot(), nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "pos=") || strings.Contains(line, "--") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "0" [pos="0.00,0.00!"];
	// "1" [pos="40.00,-30.00!"];
	// "0" -- "1";
}
