// Package nodelink renders layout frames as node-link diagrams.
//
// # Overview
//
// A frame is a [force.Snapshot]. [ToDOT] writes it as Graphviz DOT with
// every node fixed at its layout position (pos="x,y!"), and [RenderSVG] or
// [RenderPNG] runs the neato engine over it, which honours fixed positions.
// Graphviz only draws; it never moves a node.
//
// # Usage
//
//	dot := nodelink.ToDOT(engine.Snapshot(), nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Pinned nodes are filled with [PinnedColor], the rest with [FreeColor].
// Edges are undirected lines, one per adjacency entry.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
