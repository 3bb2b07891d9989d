package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// graphFlags are the flags shared by run, watch and serve. Only flags the
// user actually set override the config file.
type graphFlags struct {
	topology  string
	placement string
	seed      uint64
	size      float64
	pinned    []int

	iterations     int
	area           float64
	gravity        float64
	speed          float64
	areaMultiplier float64
	update         string
	gravityMode    string
	guard          bool
}

func (f *graphFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.topology, "topology", "t", d.Topology, "graph to lay out: demo, star:N, chain:N, ring:N, grid:WxH, tree:BxD")
	fs.StringVar(&f.placement, "placement", d.Placement, "initial positions: random, circle, noise")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "seed for random and noise placement")
	fs.Float64Var(&f.size, "size", d.Size, "side of the placement box")
	fs.IntSliceVar(&f.pinned, "pin", nil, "node ids to pin before the first step")

	fs.IntVar(&f.iterations, "iterations", d.Layout.Iterations, "steps per run")
	fs.Float64Var(&f.area, "area", d.Layout.Area, "canvas scale the forces derive from")
	fs.Float64Var(&f.gravity, "gravity", d.Layout.Gravity, "pull toward the origin (0 disables)")
	fs.Float64Var(&f.speed, "speed", d.Layout.Speed, "displacement multiplier (0 freezes)")
	fs.Float64Var(&f.areaMultiplier, "area-multiplier", d.Layout.AreaMultiplier, "factor inside the k and cap square roots")
	fs.StringVar(&f.update, "update", string(d.Layout.Update), "position update: scaled, capped")
	fs.StringVar(&f.gravityMode, "gravity-mode", string(d.Layout.GravityMode), "gravity factor: index, uniform")
	fs.BoolVar(&f.guard, "guard-non-finite", d.Layout.GuardNonFinite, "keep nodes in place when a step would make them NaN or infinite")
}

// apply copies every flag the user set onto cfg.
func (f *graphFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("topology") {
		cfg.Topology = f.topology
	}
	if set("placement") {
		cfg.Placement = f.placement
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("size") {
		cfg.Size = f.size
	}
	if set("iterations") {
		cfg.Layout.Iterations = f.iterations
	}
	if set("area") {
		cfg.Layout.Area = f.area
	}
	if set("gravity") {
		cfg.Layout.Gravity = f.gravity
	}
	if set("speed") {
		cfg.Layout.Speed = f.speed
	}
	if set("area-multiplier") {
		cfg.Layout.AreaMultiplier = f.areaMultiplier
	}
	if set("update") {
		cfg.Layout.Update = force.UpdateMode(f.update)
	}
	if set("gravity-mode") {
		cfg.Layout.GravityMode = force.GravityMode(f.gravityMode)
	}
	if set("guard-non-finite") {
		cfg.Layout.GuardNonFinite = f.guard
	}
}

// flagSet is a group of flags that can override config values.
type flagSet interface {
	apply(cmd *cobra.Command, cfg *config.Config)
}

// resolve loads the config file, applies the flag sets in order and
// validates the result.
func (c *CLI) resolve(cmd *cobra.Command, sets ...flagSet) (*config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	for _, f := range sets {
		f.apply(cmd, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// renderFlags override the [render] section of the config.
type renderFlags struct {
	labels bool
	scale  float64
	width  int
	height int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	d := config.Default().Render
	fs := cmd.Flags()
	fs.BoolVar(&f.labels, "labels", d.Labels, "draw node names")
	fs.Float64Var(&f.scale, "scale", d.Scale, "points per layout unit for svg, png and pdf")
	fs.IntVar(&f.width, "width", d.Width, "txt canvas columns")
	fs.IntVar(&f.height, "height", d.Height, "txt canvas rows")
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("labels") {
		cfg.Render.Labels = f.labels
	}
	if set("scale") {
		cfg.Render.Scale = f.scale
	}
	if set("width") {
		cfg.Render.Width = f.width
	}
	if set("height") {
		cfg.Render.Height = f.height
	}
}
