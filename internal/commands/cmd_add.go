package commands

import (
	"context"
	"strings"

	"github.com/colonyops/tracker/internal/core/duedate"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/urfave/cli/v3"
)

type AddCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tracker.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		UsageText: "tracker add <description> [due_date]",
		Description: `Creates a task with status todo.

The due date is either an absolute date or an offset from now:
  ` + strings.Join(duedate.Formats(), ", "),
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	if c.NArg() < 1 {
		return &task.ValidationError{Field: "description", Reason: "task description required"}
	}

	t, err := cmd.app.Tasks.Add(ctx, c.Args().Get(0), dueDateArg(c, 1))
	if err != nil {
		return err
	}

	printf(c, "Task added successfully (ID: %d)", t.ID)
	return nil
}
