// Package commands implements the tracker CLI subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/tracker/internal/core/duedate"
	"github.com/colonyops/tracker/internal/core/logging"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/urfave/cli/v3"
)

// Registerer adds a command to the application.
type Registerer interface {
	Register(app *cli.Command) *cli.Command
}

// Register adds every tracker subcommand to app. The commands hold app by
// pointer, so it may be populated later in a Before hook.
func Register(root *cli.Command, flags *Flags, app *tracker.App) *cli.Command {
	cmds := []Registerer{
		NewAddCmd(flags, app),
		NewUpdateCmd(flags, app),
		NewDeleteCmd(flags, app),
		NewMarkCmd(flags, app, task.StatusInProgress),
		NewMarkCmd(flags, app, task.StatusDone),
		NewListCmd(flags, app),
		NewExportCmd(flags, app),
		NewImportCmd(flags, app),
		NewConfigValidateCmd(flags),
	}

	for _, cmd := range cmds {
		root = cmd.Register(root)
	}
	return root
}

// withCommand tags ctx with the running subcommand for log events.
func withCommand(ctx context.Context, c *cli.Command) context.Context {
	return logging.WithCommand(ctx, c.Name)
}

// taskIDArg parses the task ID at position i.
func taskIDArg(c *cli.Command, i int) (int, error) {
	if c.NArg() <= i {
		return 0, &task.ValidationError{Field: "task_id", Reason: "task ID required"}
	}
	return task.ParseID(c.Args().Get(i))
}

// dueDateArg reads the optional due date at position i. A present but empty
// argument is distinct from an omitted one.
func dueDateArg(c *cli.Command, i int) duedate.Arg {
	if c.NArg() <= i {
		return duedate.Omitted()
	}
	return duedate.FromToken(c.Args().Get(i))
}

func printf(c *cli.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(c.Root().Writer, format+"\n", args...)
}
