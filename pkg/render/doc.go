// Package render turns layout snapshots into output formats.
//
// # Overview
//
// [Frame] is the single entry point used by the command line and the frame
// server. It dispatches on [Format]:
//
//   - dot: Graphviz source from [nodelink.ToDOT]
//   - svg, png: rendered in process by [nodelink]
//   - pdf: svg converted by rsvg-convert (see [ToPDF])
//   - txt: a text canvas from [term]
//
// Every call reports to the registered observability render hooks.
//
//	out, err := render.Frame(ctx, engine.Snapshot(), render.FormatSVG, render.Options{Labels: true})
//
// [nodelink]: github.com/matzehuels/forcegraph/pkg/render/nodelink
// [nodelink.ToDOT]: github.com/matzehuels/forcegraph/pkg/render/nodelink#ToDOT
// [term]: github.com/matzehuels/forcegraph/pkg/render/term
package render
