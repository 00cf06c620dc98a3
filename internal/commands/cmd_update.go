package commands

import (
	"context"

	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/urfave/cli/v3"
)

type UpdateCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags, app *tracker.App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Change a task's description and due date",
		UsageText: "tracker update <task_id> <description> [due_date]",
		Description: `Replaces the description of a task.

Omit due_date to keep the current due date. Pass "" to clear it.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	if c.NArg() < 2 {
		return &task.ValidationError{Field: "description", Reason: "task ID and new description required"}
	}

	id, err := taskIDArg(c, 0)
	if err != nil {
		return err
	}

	if _, err := cmd.app.Tasks.Update(ctx, id, c.Args().Get(1), dueDateArg(c, 2)); err != nil {
		return err
	}

	printf(c, "Task %d updated successfully", id)
	return nil
}
