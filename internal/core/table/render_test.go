package table

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/colonyops/tracker/internal/core/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

func newTestRenderer(opts ...Option) *TaskRenderer {
	opts = append([]Option{
		WithClock(func() time.Time { return renderNow }),
		WithLocation(time.UTC),
	}, opts...)
	return NewTaskRenderer(opts...)
}

func renderLines(t *testing.T, r *TaskRenderer, tasks ...task.Task) []string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tasks))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func sampleTask(id int) task.Task {
	return task.Task{
		ID:          id,
		Description: "Buy groceries",
		Status:      task.StatusTodo,
		CreatedAt:   time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 10, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestRuleWidth(t *testing.T) {
	assert.Equal(t, 4+30+12+18+20+20+5, RuleWidth(TaskColumns))
	assert.Equal(t, 7, RuleWidth([]Column{{Width: 7}}))
}

func TestRender_HeaderAndRule(t *testing.T) {
	lines := renderLines(t, newTestRenderer())
	require.Len(t, lines, 2)

	assert.Equal(t,
		"ID   Description                    Status       Due Date           Created              Updated             ",
		lines[0])
	assert.Equal(t, strings.Repeat("-", 109), lines[1])
}

func TestRender_Row(t *testing.T) {
	lines := renderLines(t, newTestRenderer(), sampleTask(7))
	require.Len(t, lines, 3)

	assert.Equal(t,
		"7    Buy groceries                  todo         No due date        2025-10-01 09:00     2025-10-02 10:30    ",
		lines[2])
	assert.Equal(t, Width(lines[0]), Width(lines[2]))
}

func TestRender_RowsKeepOrder(t *testing.T) {
	lines := renderLines(t, newTestRenderer(), sampleTask(10), sampleTask(2), sampleTask(1))
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[2], "10 "))
	assert.True(t, strings.HasPrefix(lines[3], "2 "))
	assert.True(t, strings.HasPrefix(lines[4], "1 "))
}

func TestRender_WideDescriptionAligns(t *testing.T) {
	tk := sampleTask(1)
	tk.Description = "买菜做饭"

	lines := renderLines(t, newTestRenderer(), tk)
	assert.Equal(t, Width(lines[0]), Width(lines[2]))
	assert.Contains(t, lines[2], "买菜做饭"+strings.Repeat(" ", 22)+" todo")
}

func TestRender_DescriptionTruncation(t *testing.T) {
	t.Run("exactly at budget", func(t *testing.T) {
		tk := sampleTask(1)
		tk.Description = strings.Repeat("d", 30)

		cells := newTestRenderer().Cells(tk, renderNow)
		assert.Equal(t, tk.Description, cells[ColDescription])
	})

	t.Run("one over budget", func(t *testing.T) {
		tk := sampleTask(1)
		tk.Description = strings.Repeat("d", 31)

		cells := newTestRenderer().Cells(tk, renderNow)
		assert.True(t, strings.HasSuffix(cells[ColDescription], Ellipsis))
		assert.LessOrEqual(t, Width(cells[ColDescription]), 30)

		lines := renderLines(t, newTestRenderer(), tk)
		assert.Equal(t, Width(lines[0]), Width(lines[2]))
	})
}

func TestRender_DueCell(t *testing.T) {
	past := renderNow.Add(-48 * time.Hour)
	future := renderNow.Add(48 * time.Hour)

	tests := []struct {
		name   string
		status task.Status
		due    *time.Time
		want   string
	}{
		{"absent", task.StatusTodo, nil, "No due date"},
		{"future", task.StatusTodo, &future, "2025-10-22 12:00"},
		{"overdue todo", task.StatusTodo, &past, "*2025-10-18 12:00*"},
		{"overdue in progress", task.StatusInProgress, &past, "*2025-10-18 12:00*"},
		{"past but done", task.StatusDone, &past, "2025-10-18 12:00"},
		{"due now", task.StatusTodo, &renderNow, "2025-10-20 12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := sampleTask(1)
			tk.Status = tt.status
			tk.DueDate = tt.due

			cells := newTestRenderer().Cells(tk, renderNow)
			assert.Equal(t, tt.want, cells[ColDue])
		})
	}
}

type bracketStyler struct{}

func (bracketStyler) Header(s string) string  { return "<" + s + ">" }
func (bracketStyler) Overdue(s string) string { return "[" + s + "]" }

func TestRender_StylerKeepsPadding(t *testing.T) {
	past := renderNow.Add(-time.Hour)
	tk := sampleTask(1)
	tk.DueDate = &past

	lines := renderLines(t, newTestRenderer(WithStyler(bracketStyler{})), tk)

	assert.True(t, strings.HasPrefix(lines[0], "<ID>   <Description>"))
	assert.Contains(t, lines[2], "[*2025-10-20 11:00*] 2025-10-01 09:00")
}
