package topology_test

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/topology"
)

func ExampleDemo() {
	nodes := topology.Demo()
	fmt.Println(topology.Describe(nodes))
	fmt.Println("hub degree:", nodes[0].Degree())
	fmt.Println("label:", nodes[7].Name, "from", nodes[7].Location)
	// Output:
	// 17 nodes, 16 edges
	// hub degree: 5
	// label: John from Porto
}

func ExampleParse() {
	nodes, err := topology.Parse("grid:3x2")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(topology.Describe(nodes))

	_, err = topology.Parse("hypercube:4")
	fmt.Println(err != nil)
	// Output:
	// 6 nodes, 7 edges
	// true
}
