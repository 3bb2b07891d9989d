// Logging for the forcegraph commands.
//
// Every command logs through one charmbracelet logger owned by [CLI]. The
// root command attaches it to the command context, so helpers that only see
// a context can still reach it:
//
//	logger := loggerFromContext(cmd.Context())
//	logger.Info("layout complete", "steps", res.Steps)
//
// --verbose (-v) lowers the level to debug, which adds per-stage timings,
// placement details and request logs from the server.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat keeps hundredths of a second, enough to tell steps apart at
// the default frame rates.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// stopwatch times one stage of a command and logs it when the stage ends.
// It is meant for a single goroutine.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, rounded to milliseconds:
//
//	14:32:01.45 INFO wrote outputs files=2 elapsed=31ms
func (s *stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() when the context has none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
