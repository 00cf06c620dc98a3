package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/colonyops/tracker/internal/store/jsonfile"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/colonyops/tracker/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ImportCmd struct {
	flags  *Flags
	app    *tracker.App
	reader iojson.FileReader[json.RawMessage]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tracker.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from an exported JSON document",
		UsageText: "tracker import [-f file] < backup.json",
		Description: `Reads a document in the format written by 'tracker export' and adds every
task in it under a new ID. Status and timestamps are kept.`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	cmd.reader.Stdin = c.Root().Reader
	raw, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	file, err := jsonfile.ParseTaskFile(raw)
	if err != nil {
		return err
	}

	incoming, err := file.Tasks()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	added, err := cmd.app.Tasks.Import(ctx, incoming)
	if err != nil {
		return err
	}

	printf(c, "Imported %d task(s)", len(added))
	return nil
}
