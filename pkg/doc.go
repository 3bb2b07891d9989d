// Package pkg provides the libraries behind forcegraph, a force-directed
// graph layout engine.
//
// # Overview
//
// forcegraph positions the nodes of an undirected graph by simulation: every
// pair of nodes repels, every edge attracts its endpoints, and a weak
// gravity pulls toward the origin. The pkg directory is organized into:
//
//  1. [layout/force] - The engine: nodes, configuration and the step function
//  2. [topology] and [layout/place] - Graph generators and initial placement
//  3. [sim] and [pipeline] - Running the engine and orchestrating a run
//  4. [render] and [view] - Output formats, hit testing and the view transform
//
// # Architecture
//
// The typical data flow:
//
//	topology spec (demo, grid:4x3, tree:2x3)
//	         ↓
//	    [topology] package (build nodes and edges)
//	         ↓
//	    [layout/place] package (initial positions)
//	         ↓
//	    [layout/force] package (step until the iteration budget)
//	         ↓
//	    [render] package (SVG/PNG/PDF/DOT/TXT)
//
// # Quick Start
//
// Lay out the demo graph and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/forcegraph/pkg/layout/force"
//	    "github.com/matzehuels/forcegraph/pkg/layout/place"
//	    "github.com/matzehuels/forcegraph/pkg/render"
//	    "github.com/matzehuels/forcegraph/pkg/topology"
//	)
//
//	// 1. Build and place the graph
//	nodes := topology.Demo()
//	place.Random{Seed: 42}.Place(nodes)
//
//	// 2. Step the engine
//	e, _ := force.New(nodes, nil)
//	for range e.Config().Iterations {
//	    e.Step()
//	}
//
//	// 3. Render the final positions
//	svg, _ := render.Frame(context.Background(), e.Snapshot(), render.FormatSVG, render.Options{})
//
// Or run the whole thing through [pipeline.Runner.Execute].
//
// # Main Packages
//
// ## Layout
//
// [layout/force] - The simulation. An Engine owns the node collection; Step
// runs repulsion, attraction, gravity, damping and the position update in a
// fixed order. Pinned nodes feel forces but never move.
//
// [layout/place] - Initial placement strategies: seeded random, circle and
// opensimplex noise.
//
// [topology] - The 17-node demo graph plus star, chain, ring, grid and tree
// generators.
//
// ## Running
//
// [sim] - Fixed-count, rate-paced and continuous runs with cancellation,
// progress callbacks and layout hooks.
//
// [pipeline] - build → layout → render, shared by the CLI and the server.
//
// ## Output
//
// [render] - Frame rendering in every output format.
//
//   - [render/nodelink]: DOT and Graphviz (neato, pinned positions)
//   - [render/term]: Character canvas for text output and the terminal viewer
//
// [view] - Screen transform (pan and zoom), hit testing and drag gestures.
//
// ## Infrastructure
//
// [config] - TOML/YAML configuration file discovery and validation.
//
// [observability] - Hook interfaces for layout, render and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/force/... # Specific package
//	go test -run Example ./...     # Examples only
//
// [layout/force]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/layout/force
// [layout/place]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/layout/place
// [topology]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/topology
// [sim]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/sim
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/pipeline
// [pipeline.Runner.Execute]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/pipeline#Runner.Execute
// [render]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/nodelink
// [render/term]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/term
// [view]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/view
// [config]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/errors
package pkg
