package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts command and task_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}

	if id := GetTaskID(ctx); id != 0 {
		e.Int("task_id", id)
	}
}
