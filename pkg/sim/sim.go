// Package sim drives a layout engine through a sequence of steps.
//
// The engine itself has no loop, no clock and no cancellation. A [Runner]
// supplies all three: it calls Step a fixed number of times (or until the
// context ends), optionally paced by a rate limiter, and checks the context
// between steps, never inside one.
//
//	runner := sim.NewRunner(logger)
//	res, err := runner.Run(ctx, engine, sim.Options{Steps: 200})
//	fmt.Println(res.RunID, res.Steps, res.Duration)
package sim

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// MaxRate caps the step rate of a paced run, in steps per second.
const MaxRate = 1000.0

// Stepper is the part of the engine a run needs. *force.Engine satisfies it.
type Stepper interface {
	Step()
	Len() int
	Snapshot() force.Snapshot
	Config() force.Config
}

// Options configures one run.
type Options struct {
	// Steps is the number of steps. Zero means the engine's configured
	// iteration budget. Ignored when Continuous is set.
	Steps int

	// Continuous runs until the context is cancelled.
	Continuous bool

	// Rate paces the run in steps per second. Zero runs unpaced.
	Rate float64

	// Locker, if set, is held around every Step and the final snapshot.
	// Share it with anything that mutates the engine concurrently.
	Locker sync.Locker

	// Progress, if set, is called after every step with the number of
	// completed steps and the total (zero for continuous runs).
	Progress func(done, total int)
}

// SetDefaults fills zero values from the engine configuration.
func (o *Options) SetDefaults(cfg force.Config) {
	if o.Steps == 0 && !o.Continuous {
		o.Steps = cfg.Iterations
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.Steps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "steps must be >= 0, got %d", o.Steps)
	}
	if !(o.Rate >= 0) || o.Rate > MaxRate {
		return errors.New(errors.ErrCodeInvalidInput, "rate must be between 0 and %g steps/s, got %v", MaxRate, o.Rate)
	}
	return nil
}

// Result describes a finished run.
type Result struct {
	RunID    string
	Steps    int
	Duration time.Duration
	Snapshot force.Snapshot

	// Cancelled is set when the context ended the run early.
	Cancelled bool
}

// Runner executes runs and reports them to the logger and the layout hooks.
// A Runner holds no per-run state; one Runner may serve many goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Run steps e until the step count is reached or ctx is done.
//
// On cancellation the partial result is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, e Stepper, opts Options) (Result, error) {
	opts.SetDefaults(e.Config())
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString()}
	hooks := observability.Layout()
	hooks.OnRunStart(ctx, res.RunID, e.Len())
	r.Logger.Debug("layout run started", "run", res.RunID, "nodes", e.Len(), "steps", opts.Steps, "rate", opts.Rate)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}
	lock := func() {}
	unlock := func() {}
	if opts.Locker != nil {
		lock, unlock = opts.Locker.Lock, opts.Locker.Unlock
	}

	start := time.Now()
	err := r.loop(ctx, e, opts, limiter, lock, unlock, &res)
	res.Duration = time.Since(start)

	lock()
	res.Snapshot = e.Snapshot()
	unlock()

	if err != nil {
		res.Cancelled = ctx.Err() != nil
		hooks.OnRunComplete(ctx, res.RunID, res.Steps, res.Duration, err)
		r.Logger.Debug("layout run stopped", "run", res.RunID, "steps", res.Steps, "err", err)
		return res, err
	}

	hooks.OnRunComplete(ctx, res.RunID, res.Steps, res.Duration, nil)
	r.Logger.Info("layout complete", "run", res.RunID, "steps", res.Steps, "duration", res.Duration)
	return res, nil
}

func (r *Runner) loop(ctx context.Context, e Stepper, opts Options, limiter *rate.Limiter, lock, unlock func(), res *Result) error {
	hooks := observability.Layout()
	total := opts.Steps
	if opts.Continuous {
		total = 0
	}
	for opts.Continuous || res.Steps < opts.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return errors.Wrap(errors.ErrCodeInternal, err, "pace step %d", res.Steps)
			}
		}

		t := time.Now()
		lock()
		e.Step()
		unlock()
		hooks.OnStep(ctx, time.Since(t))

		res.Steps++
		if opts.Progress != nil {
			opts.Progress(res.Steps, total)
		}
	}
	return nil
}
