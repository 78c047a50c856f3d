// Package log provides component-scoped structured loggers shared by the
// dispatcher, workers, and adapters.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the subset of zerolog's API call sites in this program use.
type Logger = zerolog.Logger

var base zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	SetLevel(os.Getenv("LEDGER_LOG_LEVEL"))

	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// SetLevel sets the global log level from a name ("debug", "info", "warn",
// "error"); an unrecognized or empty name sets the level to "info".
func SetLevel(name string) {
	switch name {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Dispatch returns the dispatcher's component logger.
func Dispatch() Logger {
	return base.With().Str("component", "dispatcher").Logger()
}

// Worker returns a component logger scoped to one customer's worker.
func Worker(customer uint32) Logger {
	return base.With().Str("component", "worker").Uint32("customer", customer).Logger()
}

// Adapter returns the component logger used by the CSV/CLI adapters.
func Adapter() Logger {
	return base.With().Str("component", "adapter").Logger()
}
