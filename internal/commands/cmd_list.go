package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/tracker/internal/core/styles"
	"github.com/colonyops/tracker/internal/core/table"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/tracker"
	"github.com/colonyops/tracker/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *tracker.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Usage:     "List tasks",
		UsageText: "tracker list [status] [sort_by] [--json]",
		Description: `Displays a table of tasks. Overdue due dates are marked with *.

status is one of todo, in-progress, done. sort_by is one of due, created,
updated, status, id. Both are optional and may be given in either order.

Use --json for one JSON object per task instead of the table.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = withCommand(ctx, c)

	filter, err := parseListArgs(c.Args().Slice(), cmd.defaultSort())
	if err != nil {
		return err
	}

	tasks, err := cmd.app.Tasks.List(ctx, filter)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		now := cmd.app.Tasks.Now()
		for _, t := range tasks {
			if err := iojson.WriteLine(out, newTaskInfo(t, now)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(tasks) == 0 {
		printf(c, "No tasks found")
		return nil
	}

	st, err := styles.NewTable(out, cmd.app.Config.Theme, styles.ColorMode(cmd.app.Config.Color))
	if err != nil {
		return err
	}

	r := table.NewTaskRenderer(
		table.WithClock(cmd.app.Tasks.Now),
		table.WithStyler(st),
	)
	return r.Render(out, tasks)
}

func (cmd *ListCmd) defaultSort() task.SortKey {
	if cmd.app.Config == nil {
		return task.SortDue
	}
	key, _ := task.ParseSortKey(cmd.app.Config.DefaultSort)
	return key
}

// parseListArgs reads up to one status and one sort key, in either order.
func parseListArgs(args []string, defaultSort task.SortKey) (tracker.ListFilter, error) {
	filter := tracker.ListFilter{Sort: defaultSort}

	if len(args) > 2 {
		return filter, &task.ValidationError{Field: "args", Reason: fmt.Sprintf("too many arguments: expected at most 2, got %d", len(args))}
	}

	var haveStatus, haveSort bool
	for _, arg := range args {
		if s := task.Status(arg); s.IsValid() && !haveStatus {
			filter.Status = s
			haveStatus = true
			continue
		}
		if key, ok := task.ParseSortKey(arg); ok && arg != "" && !haveSort {
			filter.Sort = key
			haveSort = true
			continue
		}
		return filter, &task.InvalidStatusFilterError{Value: arg}
	}

	return filter, nil
}

// taskInfo is the JSON output format for tracker list --json.
type taskInfo struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Overdue     bool       `json:"overdue"`
}

func newTaskInfo(t task.Task, now time.Time) taskInfo {
	return taskInfo{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueDate:     t.DueDate,
		Overdue:     t.IsOverdue(now),
	}
}
