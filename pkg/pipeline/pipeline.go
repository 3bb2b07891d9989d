// Package pipeline builds, lays out and renders a graph in one call.
//
// This package implements the build → layout → render pipeline shared by
// the run command, the terminal viewer and the frame server, so that all
// three seed and step graphs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Generate a topology, place its nodes and create the engine
//  2. Layout: Step the engine through a [sim.Runner]
//  3. Render: Produce the requested output formats from the final snapshot
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Topology: "tree:3x3",
//	    Steps:    300,
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	engine, err := runner.Build(opts)
//	run, err := runner.Layout(ctx, engine, opts)
//	artifacts, err := runner.Render(ctx, run.Snapshot, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/layout/place"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultTopology is the graph built when none is given.
	DefaultTopology = "demo"

	// DefaultPlacement is the initial placement strategy.
	DefaultPlacement = "random"

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultSize is the side of the placement box.
	DefaultSize = float64(place.DefaultSize)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Topology  string  `json:"topology,omitempty"`
	Placement string  `json:"placement,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Pinned    []int   `json:"pinned,omitempty"` // Node ids pinned before the first step

	// Layout options
	Layout force.Config `json:"layout"`
	Steps  int          `json:"steps,omitempty"`
	Rate   float64      `json:"rate,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Width   int      `json:"width,omitempty"`  // txt canvas columns
	Height  int      `json:"height,omitempty"` // txt canvas rows

	// Runtime options (not serialized)
	Logger   *log.Logger            `json:"-"`
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Engine holds the laid-out graph and can keep stepping.
	Engine *force.Engine

	// Run describes the layout stage.
	Run sim.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Steps      int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetBuildDefaults sets default values for graph construction.
// A zero Layout means [force.DefaultConfig].
func (o *Options) SetBuildDefaults() {
	if o.Topology == "" {
		o.Topology = DefaultTopology
	}
	if o.Placement == "" {
		o.Placement = DefaultPlacement
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Layout == (force.Config{}) {
		o.Layout = force.DefaultConfig()
	}
	o.Layout.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForBuild validates and sets defaults for graph construction.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if o.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must be positive, got %v", o.Size)
	}
	return o.Layout.Validate()
}

// ValidateForLayout validates the layout stage options.
func (o *Options) ValidateForLayout() error {
	o.SetBuildDefaults()
	return o.simOptions().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) simOptions() sim.Options {
	return sim.Options{Steps: o.Steps, Rate: o.Rate, Progress: o.Progress}
}

func (o *Options) renderOptions() render.Options {
	return render.Options{Labels: o.Labels, Scale: o.Scale, Width: o.Width, Height: o.Height}
}
