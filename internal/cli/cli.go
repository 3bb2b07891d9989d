// Package cli implements the forcegraph command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
	"github.com/matzehuels/forcegraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for output files and display.
const appName = "forcegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "forcegraph lays out graphs with a force-directed simulation",
		Long: `forcegraph positions the nodes of a graph by simulating repulsion between
every pair of nodes, attraction along edges and a pull toward the origin.

Graphs are generated from a topology spec (the 17-node demo, stars, chains,
rings, grids and trees), stepped for a number of iterations and rendered as
SVG, PNG, PDF, DOT or text. The same simulation can be watched live in the
terminal or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file (default: $"+config.EnvConfigPath+", ./forcegraph.toml, then the user config dir)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner
// =============================================================================

// loadConfig reads the config file named by --config or found on the search
// path, falling back to the built-in defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, path, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// pipelineOptions maps a resolved config onto pipeline options.
func pipelineOptions(cfg *config.Config, pinned []int) pipeline.Options {
	return pipeline.Options{
		Topology:  cfg.Topology,
		Placement: cfg.Placement,
		Seed:      cfg.Seed,
		Size:      cfg.Size,
		Pinned:    pinned,
		Layout:    cfg.Layout,
		Labels:    cfg.Render.Labels,
		Scale:     cfg.Render.Scale,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
	}
}

// renderOptions maps the render section onto frame options.
func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		Labels: cfg.Render.Labels,
		Scale:  cfg.Render.Scale,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// outputPath derives the file for one format. With a single format the
// output flag is used as-is; with several, its extension is replaced per
// format. An empty output means "forcegraph.<format>".
func outputPath(output, format string, multiple bool) string {
	if output == "" {
		return appName + "." + format
	}
	if !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}
