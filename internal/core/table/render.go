package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/tracker/internal/core/task"
)

// TimeLayout is used for every timestamp cell.
const TimeLayout = "2006-01-02 15:04"

// NoDueDate is shown for tasks without a due date.
const NoDueDate = "No due date"

// OverdueMarker wraps the due date of overdue tasks.
const OverdueMarker = "*"

// Column is a fixed-width table column.
type Column struct {
	Title string
	Width int
	Align Align
}

// Column indexes into TaskColumns.
const (
	ColID = iota
	ColDescription
	ColStatus
	ColDue
	ColCreated
	ColUpdated
)

// TaskColumns are the columns of the task list.
var TaskColumns = []Column{
	ColID:          {Title: "ID", Width: 4},
	ColDescription: {Title: "Description", Width: 30},
	ColStatus:      {Title: "Status", Width: 12},
	ColDue:         {Title: "Due Date", Width: 18},
	ColCreated:     {Title: "Created", Width: 20},
	ColUpdated:     {Title: "Updated", Width: 20},
}

// Gap separates adjacent columns.
const Gap = " "

// RuleWidth returns the width of the separator rule: every column plus the
// gaps between them.
func RuleWidth(cols []Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width
	}
	if len(cols) > 1 {
		w += (len(cols) - 1) * len(Gap)
	}
	return w
}

// Styler decorates cell text. Implementations must not change display width.
type Styler interface {
	Header(s string) string
	Overdue(s string) string
}

// Plain is a Styler that leaves text untouched.
type Plain struct{}

func (Plain) Header(s string) string  { return s }
func (Plain) Overdue(s string) string { return s }

// TaskRenderer writes tasks as an aligned table.
type TaskRenderer struct {
	now    func() time.Time
	loc    *time.Location
	styler Styler
}

// Option configures a TaskRenderer.
type Option func(*TaskRenderer)

// WithClock sets the clock used to decide whether a task is overdue.
func WithClock(now func() time.Time) Option {
	return func(r *TaskRenderer) { r.now = now }
}

// WithLocation sets the zone timestamps are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(r *TaskRenderer) { r.loc = loc }
}

// WithStyler sets the cell decorator.
func WithStyler(s Styler) Option {
	return func(r *TaskRenderer) { r.styler = s }
}

// NewTaskRenderer returns a renderer using the local clock and zone and no
// styling unless overridden.
func NewTaskRenderer(opts ...Option) *TaskRenderer {
	r := &TaskRenderer{
		now:    time.Now,
		loc:    time.Local,
		styler: Plain{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the header, the separator rule, and one row per task in the
// order given.
func (r *TaskRenderer) Render(w io.Writer, tasks []task.Task) error {
	now := r.now()

	header := make([]string, len(TaskColumns))
	for i, c := range TaskColumns {
		header[i] = r.styler.Header(c.Title) + padding(c.Title, c.Width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, Gap)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", RuleWidth(TaskColumns))); err != nil {
		return err
	}

	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, r.row(t, now)); err != nil {
			return err
		}
	}
	return nil
}

// Cells returns the unpadded cell text of a task row.
func (r *TaskRenderer) Cells(t task.Task, now time.Time) []string {
	cells := make([]string, len(TaskColumns))
	cells[ColID] = strconv.Itoa(t.ID)
	cells[ColDescription] = Truncate(t.Description, TaskColumns[ColDescription].Width)
	cells[ColStatus] = string(t.Status)
	cells[ColDue] = r.dueCell(t, now)
	cells[ColCreated] = t.CreatedAt.In(r.loc).Format(TimeLayout)
	cells[ColUpdated] = t.UpdatedAt.In(r.loc).Format(TimeLayout)
	return cells
}

func (r *TaskRenderer) dueCell(t task.Task, now time.Time) string {
	if t.DueDate == nil {
		return NoDueDate
	}
	s := t.DueDate.In(r.loc).Format(TimeLayout)
	if t.IsOverdue(now) {
		return OverdueMarker + s + OverdueMarker
	}
	return s
}

func (r *TaskRenderer) row(t task.Task, now time.Time) string {
	cells := r.Cells(t, now)
	out := make([]string, len(cells))
	for i, cell := range cells {
		col := TaskColumns[i]
		styled := cell
		if i == ColDue && t.IsOverdue(now) {
			styled = r.styler.Overdue(cell)
		}
		switch col.Align {
		case AlignLeft:
			out[i] = styled + padding(cell, col.Width)
		default:
			padded := Pad(cell, col.Width, col.Align)
			out[i] = strings.Replace(padded, cell, styled, 1)
		}
	}
	return strings.Join(out, Gap)
}

// padding returns the spaces that left-align s in width columns.
func padding(s string, width int) string {
	return strings.Repeat(" ", max(0, width-Width(s)))
}
