package force

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Defaults for [Config].
const (
	DefaultIterations     = 100
	DefaultArea           = 400.0
	DefaultGravity        = 10.0
	DefaultSpeed          = 1.0
	DefaultAreaMultiplier = 10.0
)

const (
	// SpeedDivisor normalizes speed in the damping and cap terms.
	SpeedDivisor = 32.0

	gravityScale       = 0.01
	maxDisplaceDivisor = 10.0
)

// UpdateMode selects how the damped displacement moves a node.
type UpdateMode string

const (
	// UpdateScaled adds disp*limited to the position. The step is not bounded
	// by the cap; this is the behaviour the layout was tuned with.
	UpdateScaled UpdateMode = "scaled"

	// UpdateCapped adds disp/|disp|*limited, so no node moves further than
	// MaxDisplace*Speed/32 in one step.
	UpdateCapped UpdateMode = "capped"
)

// GravityMode selects the gravity factor.
type GravityMode string

const (
	// GravityIndex scales gravity by the node's position in iteration order.
	GravityIndex GravityMode = "index"

	// GravityUniform applies the same factor to every node.
	GravityUniform GravityMode = "uniform"
)

// Config holds the simulation constants. Values are fixed for the lifetime
// of an [Engine]; the derived K factor is recomputed when nodes are replaced.
type Config struct {
	// Iterations is the recommended number of steps. Step does not enforce it.
	Iterations int `toml:"iterations" yaml:"iterations" json:"iterations"`

	// Area is the canvas scale the force constants derive from.
	Area float64 `toml:"area" yaml:"area" json:"area"`

	// Gravity pulls nodes toward the origin. Zero disables it.
	Gravity float64 `toml:"gravity" yaml:"gravity" json:"gravity"`

	// Speed multiplies the damped displacement. Zero freezes the layout.
	Speed float64 `toml:"speed" yaml:"speed" json:"speed"`

	// AreaMultiplier is the factor inside both derived square roots.
	AreaMultiplier float64 `toml:"area_multiplier" yaml:"area_multiplier" json:"area_multiplier"`

	Update      UpdateMode  `toml:"update" yaml:"update" json:"update"`
	GravityMode GravityMode `toml:"gravity_mode" yaml:"gravity_mode" json:"gravity_mode"`

	// GuardNonFinite keeps a node in place when its new position would be
	// NaN or infinite.
	GuardNonFinite bool `toml:"guard_non_finite" yaml:"guard_non_finite" json:"guard_non_finite"`
}

// DefaultConfig returns the configuration the layout was tuned with.
func DefaultConfig() Config {
	return Config{
		Iterations:     DefaultIterations,
		Area:           DefaultArea,
		Gravity:        DefaultGravity,
		Speed:          DefaultSpeed,
		AreaMultiplier: DefaultAreaMultiplier,
		Update:         UpdateScaled,
		GravityMode:    GravityIndex,
	}
}

// SetDefaults fills fields whose zero value is never meaningful.
// Gravity and Speed are left alone: zero is a valid setting for both.
func (c *Config) SetDefaults() {
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Area == 0 {
		c.Area = DefaultArea
	}
	if c.AreaMultiplier == 0 {
		c.AreaMultiplier = DefaultAreaMultiplier
	}
	if c.Update == "" {
		c.Update = UpdateScaled
	}
	if c.GravityMode == "" {
		c.GravityMode = GravityIndex
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	switch {
	case c.Iterations < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be >= 0, got %d", c.Iterations)
	case !(c.Area > 0) || math.IsInf(c.Area, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "area must be a positive number, got %v", c.Area)
	case !(c.AreaMultiplier > 0) || math.IsInf(c.AreaMultiplier, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "area_multiplier must be a positive number, got %v", c.AreaMultiplier)
	case !(c.Gravity >= 0) || math.IsInf(c.Gravity, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "gravity must be >= 0, got %v", c.Gravity)
	case !(c.Speed >= 0) || math.IsInf(c.Speed, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "speed must be >= 0, got %v", c.Speed)
	}
	switch c.Update {
	case UpdateScaled, UpdateCapped:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "update must be %q or %q, got %q", UpdateScaled, UpdateCapped, c.Update)
	}
	switch c.GravityMode {
	case GravityIndex, GravityUniform:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "gravity_mode must be %q or %q, got %q", GravityIndex, GravityUniform, c.GravityMode)
	}
	return nil
}

// MaxDisplace returns sqrt(AreaMultiplier*Area)/10.
func (c Config) MaxDisplace() float64 {
	return math.Sqrt(c.AreaMultiplier*c.Area) / maxDisplaceDivisor
}

// K returns the repulsion/attraction scale for a graph of n nodes:
// sqrt(AreaMultiplier*Area/(1+n)).
func (c Config) K(n int) float64 {
	return math.Sqrt(c.AreaMultiplier * c.Area / (1.0 + float64(n)))
}

// StepCap returns the distance cap applied in the position update.
func (c Config) StepCap() float64 {
	return c.MaxDisplace() * (c.Speed / SpeedDivisor)
}
