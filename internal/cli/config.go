package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create and check configuration files",
		Long: `Without a subcommand, config prints the built-in defaults as TOML. Save
the output as forcegraph.toml to customize it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().EncodeTOML(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configValidateCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

// configShowCommand prints the configuration the other commands would use.
func (c *CLI) configShowCommand() *cobra.Command {
	var yamlOut bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if path == "" {
				path = "(built-in defaults)"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", path)
			if yamlOut {
				return cfg.EncodeYAML(cmd.OutOrStdout())
			}
			return cfg.EncodeTOML(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "print YAML instead of TOML")
	return cmd
}

// configValidateCommand checks a file without running anything.
func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = config.FindConfigPath()
			}
			if path == "" {
				return fmt.Errorf("no config file found; pass one as an argument")
			}
			cfg, err := config.LoadFromPath(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			printSuccess("%s is valid", path)
			printKeyValue("topology", cfg.Topology)
			printKeyValue("placement", cfg.Placement)
			printKeyValue("layout", fmt.Sprintf("area=%g gravity=%g speed=%g update=%s", cfg.Layout.Area, cfg.Layout.Gravity, cfg.Layout.Speed, cfg.Layout.Update))
			return nil
		},
	}
}

// configInitCommand writes the defaults to a file.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default configuration to a file",
		Long: `Init writes the built-in defaults to the given file, or to the user config
directory when no file is given. The extension picks TOML or YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no user config directory; pass a file")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
