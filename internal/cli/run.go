package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// runCommand creates the run command: build, step and render in one go.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags   graphFlags
		rflags  renderFlags
		output  string
		formats string
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lay out a graph and render the final frame",
		Long: `Run builds a graph from a topology spec, places its nodes, steps the
simulation and renders the final positions.

Formats are svg, png, pdf (requires rsvg-convert), dot and txt. With several
formats the output path is used as a base name. Use -o - to write a single
format to stdout.`,
		Example: `  forcegraph run
  forcegraph run -t tree:3x3 --iterations 300 -f svg,png -o tree.svg
  forcegraph run -t grid:6x4 --placement circle -f txt -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolve(cmd, &flags, &rflags)
			if err != nil {
				return err
			}

			opts := pipelineOptions(cfg, flags.pinned)
			opts.Formats = parseFormats(formats)
			if len(opts.Formats) == 0 {
				opts.Formats = parseFormats(cfg.Render.Format)
			}
			opts.Rate = rate
			opts.Logger = c.Logger
			return c.runPipeline(cmd, opts, output)
		},
	}

	flags.register(cmd)
	rflags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, base path for several formats, or - for stdout (default: forcegraph.<format>)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg, png, pdf, dot, txt (comma-separated; default from config)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "pace the run in steps per second (0: as fast as possible)")

	return cmd
}

// runPipeline executes the pipeline and writes its artifacts.
func (c *CLI) runPipeline(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	toStdout := output == "-"
	if toStdout && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--output - needs exactly one format, got %d", len(opts.Formats))
	}

	sw := startStopwatch(loggerFromContext(ctx))
	spinner := newSpinner(ctx, "Laying out...")
	opts.Progress = func(done, total int) {
		spinner.SetMessage("Stepping %d/%d", done, total)
	}
	spinner.Start()

	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if toStdout {
		_, err := cmd.OutOrStdout().Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	multiple := len(opts.Formats) > 1
	var paths []string
	for _, f := range opts.Formats {
		path := outputPath(output, f, multiple)
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	sw.done("wrote outputs", "files", len(paths))

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats)
	printNewline()
	printNextStep("Watch it converge", fmt.Sprintf("%s watch -t %s --seed %d", appName, opts.Topology, opts.Seed))
	return nil
}
