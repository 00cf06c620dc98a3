package commands

import (
	"context"

	"github.com/colonyops/tracker/internal/tracker"
	"github.com/urfave/cli/v3"
)

type DeleteCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags, app *tracker.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "delete",
		Usage:     "Delete a task",
		UsageText: "tracker delete <task_id>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	id, err := taskIDArg(c, 0)
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Delete(ctx, id); err != nil {
		return err
	}

	printf(c, "Task %d deleted successfully", id)
	return nil
}
