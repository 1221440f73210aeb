// Package logx is the single setup point for structured logging: one
// leveled logger, stderr only, so stdout stays reserved for the exact
// two-line contract the CLI promises. Every other package takes a
// zerolog.Logger as a constructor argument rather than reaching for a
// package-level global.
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. verbose raises the level to debug so
// the executor's fork/solver-query events are visible; otherwise only
// info-and-above are emitted.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return newWithWriter(os.Stderr, level)
}

// NewTest builds a silent logger for unit tests that construct a
// Driver or Dispatcher but don't want log output cluttering `go test
// -v`.
func NewTest() zerolog.Logger {
	return newWithWriter(io.Discard, zerolog.Disabled)
}

func newWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
