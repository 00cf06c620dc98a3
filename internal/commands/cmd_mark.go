package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/urfave/cli/v3"
)

// MarkCmd sets a task's status. One instance is registered per target
// status as mark-<status>.
type MarkCmd struct {
	flags  *Flags
	app    *tracker.App
	status task.Status
}

// NewMarkCmd creates a command that marks tasks as status.
func NewMarkCmd(flags *Flags, app *tracker.App, status task.Status) *MarkCmd {
	return &MarkCmd{flags: flags, app: app, status: status}
}

// Register adds the mark-<status> command to the application
func (cmd *MarkCmd) Register(app *cli.Command) *cli.Command {
	name := "mark-" + string(cmd.status)

	app.Commands = append(app.Commands, &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("Mark a task as %s", cmd.status),
		UsageText: fmt.Sprintf("tracker %s <task_id>", name),
		Action:    cmd.run,
	})

	return app
}

func (cmd *MarkCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	id, err := taskIDArg(c, 0)
	if err != nil {
		return err
	}

	switch cmd.status {
	case task.StatusInProgress:
		_, err = cmd.app.Tasks.MarkInProgress(ctx, id)
	case task.StatusDone:
		_, err = cmd.app.Tasks.MarkDone(ctx, id)
	default:
		panic(fmt.Sprintf("mark command registered for unsupported status %q", cmd.status))
	}
	if err != nil {
		return err
	}

	printf(c, "Task %d marked as %s", id, cmd.status)
	return nil
}
