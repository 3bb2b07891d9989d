package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/internal/metrics"
	"github.com/matzehuels/forcegraph/internal/server"
	"github.com/matzehuels/forcegraph/pkg/config"
)

// serveFlags override the [serve] section of the config.
type serveFlags struct {
	addr     string
	rate     float64
	maxSteps int
}

func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("addr") {
		cfg.Serve.Addr = f.addr
	}
	if set("rate") {
		cfg.Serve.Rate = f.rate
	}
	if set("max-steps") {
		cfg.Serve.MaxSteps = f.maxSteps
	}
}

// serveCommand creates the serve command: a live layout behind an HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags  graphFlags
		rflags renderFlags
		sflags serveFlags
		paused bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live layout over HTTP",
		Long: `Serve keeps a layout running in the background and exposes it over HTTP.

Endpoints:
  GET    /healthz                       liveness
  GET    /api/v1/frame                  node positions and edges as JSON
  GET    /api/v1/frame.svg              the current frame as SVG
  GET    /api/v1/frame/{format}         the current frame as png, pdf, dot or txt
  POST   /api/v1/step?n=N               step N times now
  POST   /api/v1/hit                    hit-test a screen point {x, y, view, radius}
  GET    /api/v1/nodes/{id}             one node
  POST   /api/v1/nodes/{id}/pin         pin a node
  DELETE /api/v1/nodes/{id}/pin         release a node
  PUT    /api/v1/nodes/{id}/position    move a node {x, y}
  GET    /metrics                       Prometheus metrics`,
		Example: `  forcegraph serve
  forcegraph serve -t tree:3x4 --addr :9090 --rate 60
  forcegraph serve --paused`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve(cmd, &flags, &rflags, &sflags)
			if err != nil {
				return err
			}

			e, err := c.newRunner().Build(pipelineOptions(cfg, flags.pinned))
			if err != nil {
				return err
			}

			m := metrics.New()
			m.Register()

			srv := server.New(e, server.Options{
				Serve:   cfg.Serve,
				Render:  renderOptions(cfg),
				Paused:  paused,
				Metrics: m.Handler(),
				Logger:  c.Logger,
			})
			c.Logger.Info("serving layout",
				"topology", cfg.Topology,
				"nodes", e.Len(),
				"addr", cfg.Serve.Addr,
				"rate", cfg.Serve.Rate,
				"paused", paused)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	flags.register(cmd)
	rflags.register(cmd)
	d := config.Default().Serve
	cmd.Flags().StringVar(&sflags.addr, "addr", d.Addr, "listen address")
	cmd.Flags().Float64Var(&sflags.rate, "rate", d.Rate, "background steps per second")
	cmd.Flags().IntVar(&sflags.maxSteps, "max-steps", d.MaxSteps, "largest n accepted by POST /api/v1/step")
	cmd.Flags().BoolVar(&paused, "paused", false, "do not step in the background")

	return cmd
}
