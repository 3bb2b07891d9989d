// Package config loads forcegraph settings from TOML or YAML files.
//
// Config file locations (priority order):
//  1. --config flag
//  2. $FORCEGRAPH_CONFIG
//  3. ./forcegraph.toml, ./forcegraph.yaml
//  4. $XDG_CONFIG_HOME/forcegraph/config.toml (or ~/.config/...)
//
// Values missing from a file keep their defaults. Command-line flags are
// applied on top by the caller.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/layout/place"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
	"github.com/matzehuels/forcegraph/pkg/topology"
)

// Config is the full application configuration.
type Config struct {
	Topology  string  `toml:"topology" yaml:"topology"`
	Placement string  `toml:"placement" yaml:"placement"`
	Seed      uint64  `toml:"seed" yaml:"seed"`
	Size      float64 `toml:"size" yaml:"size"`

	Layout force.Config `toml:"layout" yaml:"layout"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Serve  ServeConfig  `toml:"serve" yaml:"serve"`
}

// RenderConfig controls frame output.
type RenderConfig struct {
	Format string  `toml:"format" yaml:"format"`
	Labels bool    `toml:"labels" yaml:"labels"`
	Scale  float64 `toml:"scale" yaml:"scale"`
	Width  int     `toml:"width" yaml:"width"`
	Height int     `toml:"height" yaml:"height"`
}

// ServeConfig controls the frame server.
type ServeConfig struct {
	Addr string `toml:"addr" yaml:"addr"`

	// Rate is the background step rate in steps per second.
	Rate float64 `toml:"rate" yaml:"rate"`

	// MaxSteps bounds POST /api/v1/step?n=.
	MaxSteps int `toml:"max_steps" yaml:"max_steps"`

	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Topology:  "demo",
		Placement: "random",
		Seed:      42,
		Size:      place.DefaultSize,
		Layout:    force.DefaultConfig(),
		Render: RenderConfig{
			Format: string(render.FormatSVG),
			Labels: true,
			Scale:  1,
			Width:  80,
			Height: 24,
		},
		Serve: ServeConfig{
			Addr:            "127.0.0.1:8080",
			Rate:            30,
			MaxSteps:        10000,
			ShutdownTimeout: Duration(5 * time.Second),
		},
	}
}

// Load reads the file at path, or the first file found by [FindConfigPath]
// when path is empty. It returns the defaults and an empty path if no file
// exists.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads config from a specific path. The format follows the
// extension: .toml, .yaml or .yml.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext over the defaults.
// Unknown keys are rejected.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (want .toml, .yaml or .yml)", ext)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills values whose zero is never meaningful.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Topology == "" {
		c.Topology = d.Topology
	}
	if c.Placement == "" {
		c.Placement = d.Placement
	}
	if c.Size == 0 {
		c.Size = d.Size
	}
	c.Layout.SetDefaults()
	if c.Render.Format == "" {
		c.Render.Format = d.Render.Format
	}
	if c.Render.Scale == 0 {
		c.Render.Scale = d.Render.Scale
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}
	if c.Serve.MaxSteps == 0 {
		c.Serve.MaxSteps = d.Serve.MaxSteps
	}
	if c.Serve.ShutdownTimeout == 0 {
		c.Serve.ShutdownTimeout = d.Serve.ShutdownTimeout
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if _, err := topology.Parse(c.Topology); err != nil {
		return err
	}
	if _, err := place.New(c.Placement, c.Seed, c.Size); err != nil {
		return err
	}
	if !(c.Size > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "size must be positive, got %v", c.Size)
	}
	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		return err
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render width and height must be >= 0")
	}
	if !(c.Serve.Rate > 0) || c.Serve.Rate > sim.MaxRate {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.rate must be in (0, %g], got %v", sim.MaxRate, c.Serve.Rate)
	}
	if c.Serve.MaxSteps < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.max_steps must be positive, got %d", c.Serve.MaxSteps)
	}
	return nil
}

// EncodeTOML writes the configuration as TOML.
func (c *Config) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// EncodeYAML writes the configuration as YAML.
func (c *Config) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the configuration to path in the format its extension names.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = c.EncodeYAML(&buf)
	default:
		err = c.EncodeTOML(&buf)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
