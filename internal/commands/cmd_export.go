package commands

import (
	"context"

	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/store/jsonfile"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/colonyops/tracker/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ExportCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *tracker.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "export",
		Usage:       "Print all tasks as JSON",
		UsageText:   "tracker export > backup.json",
		Description: "Writes every task in the store file format. The output can be read back with 'tracker import'.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	tasks, err := cmd.app.Tasks.List(ctx, tracker.ListFilter{Sort: task.SortID})
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, jsonfile.NewTaskFile(tasks))
}
