// Package logging provides component loggers that pick up command context.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier derived from
// the global logger. Uses the "cmp" key for consistency with zerolog
// conventions. Events logged with a context carry its command and task ID.
func Component(name string) zerolog.Logger {
	return From(log.Logger, name)
}

// From derives a component logger from base.
func From(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
