package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/layout/place"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
	"github.com/matzehuels/forcegraph/pkg/topology"
)

// Runner encapsulates pipeline execution.
// Both the CLI and the server use it so graphs are seeded identically.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Sim    *sim.Runner
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Sim:    sim.NewRunner(logger),
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	e, err := r.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Engine = e
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = e.Len()
	result.Stats.EdgeCount = len(e.Edges())

	r.Logger.Info("built graph",
		"topology", opts.Topology,
		"placement", opts.Placement,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount)

	// Stage 2: Layout
	run, err := r.Layout(ctx, e, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Run = run
	result.Stats.Steps = run.Steps
	result.Stats.LayoutTime = run.Duration

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, run.Snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build generates the topology, places it and returns a ready engine with
// the requested nodes pinned.
func (r *Runner) Build(opts Options) (*force.Engine, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	nodes, err := topology.Parse(opts.Topology)
	if err != nil {
		return nil, err
	}
	strategy, err := place.New(opts.Placement, opts.Seed, opts.Size)
	if err != nil {
		return nil, err
	}
	strategy.Place(nodes)

	layout := opts.Layout
	e, err := force.New(nodes, &layout)
	if err != nil {
		return nil, err
	}
	for _, id := range opts.Pinned {
		if err := e.Pin(id); err != nil {
			return nil, err
		}
	}

	r.Logger.Debug("placed nodes",
		"strategy", strategy.Name(),
		"seed", opts.Seed,
		"k", e.K(),
		"max_displace", e.MaxDisplace())
	return e, nil
}

// Layout steps the engine according to opts.
func (r *Runner) Layout(ctx context.Context, e *force.Engine, opts Options) (sim.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return sim.Result{}, err
	}
	return r.Sim.Run(ctx, e, opts.simOptions())
}

// Render produces every requested format from a snapshot.
func (r *Runner) Render(ctx context.Context, s force.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := render.Frame(ctx, s, f, opts.renderOptions())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		artifacts[string(f)] = data
		r.Logger.Debug("rendered frame", "format", f, "bytes", len(data))
	}
	return artifacts, nil
}
