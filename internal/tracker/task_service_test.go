package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colonyops/tracker/internal/core/duedate"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/colonyops/tracker/internal/store/jsonfile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how often the wrapped store is loaded and saved.
type countingStore struct {
	task.Store
	loads int
	saves int
}

func (c *countingStore) Load(ctx context.Context) (*task.Collection, error) {
	c.loads++
	return c.Store.Load(ctx)
}

func (c *countingStore) Save(ctx context.Context, tasks *task.Collection) error {
	c.saves++
	return c.Store.Save(ctx, tasks)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTaskService(t *testing.T) (*TaskService, *countingStore, *fakeClock) {
	t.Helper()

	store := &countingStore{
		Store: jsonfile.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"), zerolog.Nop()),
	}
	clock := &fakeClock{t: time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)}

	svc := NewTaskService(store, zerolog.Nop())
	svc.SetClock(clock.Now)
	return svc, store, clock
}

func listAll(t *testing.T, svc *TaskService) []task.Task {
	t.Helper()

	tasks, err := svc.List(context.Background(), ListFilter{Sort: task.SortID})
	require.NoError(t, err)
	return tasks
}

func TestTaskService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a todo task", func(t *testing.T) {
		svc, store, clock := newTestTaskService(t)

		added, err := svc.Add(ctx, "Buy groceries", duedate.Omitted())
		require.NoError(t, err)
		assert.Equal(t, 1, added.ID)
		assert.Equal(t, 1, store.saves)

		tasks := listAll(t, svc)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy groceries", tasks[0].Description)
		assert.Equal(t, task.StatusTodo, tasks[0].Status)
		assert.True(t, tasks[0].CreatedAt.Equal(clock.t))
		assert.True(t, tasks[0].CreatedAt.Equal(tasks[0].UpdatedAt))
		assert.Nil(t, tasks[0].DueDate)
	})

	t.Run("with due date", func(t *testing.T) {
		svc, _, clock := newTestTaskService(t)

		added, err := svc.Add(ctx, "Pay rent", duedate.FromToken("+1w"))
		require.NoError(t, err)
		require.NotNil(t, added.DueDate)
		assert.True(t, added.DueDate.Equal(clock.t.Add(7*24*time.Hour)))

		tasks := listAll(t, svc)
		require.NotNil(t, tasks[0].DueDate)
		assert.True(t, tasks[0].DueDate.Equal(*added.DueDate))
	})

	t.Run("empty description is rejected without saving", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)

		_, err := svc.Add(ctx, "", duedate.Omitted())
		var verr *task.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "description", verr.Field)
		assert.Zero(t, store.saves)
	})

	t.Run("invalid due date is rejected without saving", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)

		_, err := svc.Add(ctx, "Call mom", duedate.FromToken("someday"))
		var derr *duedate.InvalidError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "someday", derr.Token)
		assert.Zero(t, store.saves)
		assert.Empty(t, listAll(t, svc))
	})
}

func TestTaskService_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTaskService(t)

	for _, d := range []string{"one", "two", "three"} {
		_, err := svc.Add(ctx, d, duedate.Omitted())
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, 2))
	added, err := svc.Add(ctx, "four", duedate.Omitted())
	require.NoError(t, err)
	assert.Equal(t, 4, added.ID, "deleting a middle task does not free its ID")

	require.NoError(t, svc.Delete(ctx, 4))
	added, err = svc.Add(ctx, "five", duedate.Omitted())
	require.NoError(t, err)
	assert.Equal(t, 4, added.ID, "next ID is the highest remaining plus one")
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*TaskService, *countingStore, *fakeClock) {
		svc, store, clock := newTestTaskService(t)
		_, err := svc.Add(ctx, "Write report", duedate.FromToken("2025-10-27"))
		require.NoError(t, err)
		clock.Advance(time.Hour)
		return svc, store, clock
	}

	t.Run("omitted due date is unchanged", func(t *testing.T) {
		svc, _, clock := setup(t)

		updated, err := svc.Update(ctx, 1, "Write final report", duedate.Omitted())
		require.NoError(t, err)
		assert.Equal(t, "Write final report", updated.Description)
		require.NotNil(t, updated.DueDate)
		assert.Equal(t, 27, updated.DueDate.Day())
		assert.True(t, updated.UpdatedAt.Equal(clock.t))
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("empty due date clears", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Update(ctx, 1, "Write report", duedate.FromToken(""))
		require.NoError(t, err)
		assert.Nil(t, listAll(t, svc)[0].DueDate)
	})

	t.Run("new due date is set", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Update(ctx, 1, "Write report", duedate.FromToken("2025/11/03 17:30"))
		require.NoError(t, err)

		due := listAll(t, svc)[0].DueDate
		require.NotNil(t, due)
		assert.True(t, due.Equal(time.Date(2025, 11, 3, 17, 30, 0, 0, time.UTC)))
	})

	t.Run("unknown task", func(t *testing.T) {
		svc, store, _ := setup(t)
		saves := store.saves

		_, err := svc.Update(ctx, 9, "Nope", duedate.Omitted())
		var nf *task.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "9", nf.ID)
		assert.Equal(t, saves, store.saves)
	})

	t.Run("empty description", func(t *testing.T) {
		svc, store, _ := setup(t)
		saves := store.saves

		_, err := svc.Update(ctx, 1, "", duedate.FromToken(""))
		var verr *task.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, saves, store.saves)
		assert.NotNil(t, listAll(t, svc)[0].DueDate, "nothing was applied")
	})

	t.Run("bad due date leaves description", func(t *testing.T) {
		svc, store, _ := setup(t)
		saves := store.saves

		_, err := svc.Update(ctx, 1, "Changed", duedate.FromToken("+5y"))
		var derr *duedate.InvalidError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, saves, store.saves)
		assert.Equal(t, "Write report", listAll(t, svc)[0].Description)
	})

	t.Run("rejected input never reads the store", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)
		path := store.Store.(*jsonfile.TaskStore).Path()
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := svc.Update(ctx, 1, "", duedate.Omitted())
		var verr *task.ValidationError
		require.ErrorAs(t, err, &verr)

		_, err = svc.Update(ctx, 1, "Changed", duedate.FromToken("soon"))
		var derr *duedate.InvalidError
		require.ErrorAs(t, err, &derr)

		assert.Equal(t, 0, store.loads)
		data, err := os.ReadFile(path)
		require.NoError(t, err, "corrupt store is left in place")
		assert.Equal(t, "{not json", string(data))
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTaskService(t)

	_, err := svc.Add(ctx, "temp", duedate.Omitted())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, listAll(t, svc))

	err = svc.Delete(ctx, 1)
	var nf *task.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestTaskService_StatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("todo to in-progress to done", func(t *testing.T) {
		svc, _, clock := newTestTaskService(t)
		_, err := svc.Add(ctx, "task", duedate.Omitted())
		require.NoError(t, err)

		clock.Advance(time.Minute)
		got, err := svc.MarkInProgress(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, got.Status)
		assert.True(t, got.UpdatedAt.Equal(clock.t))

		clock.Advance(time.Minute)
		got, err = svc.MarkDone(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, task.StatusDone, got.Status)
		assert.True(t, got.UpdatedAt.Equal(clock.t))
	})

	t.Run("todo straight to done", func(t *testing.T) {
		svc, _, _ := newTestTaskService(t)
		_, err := svc.Add(ctx, "task", duedate.Omitted())
		require.NoError(t, err)

		got, err := svc.MarkDone(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, task.StatusDone, got.Status)
	})

	t.Run("done is terminal", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)
		_, err := svc.Add(ctx, "task", duedate.Omitted())
		require.NoError(t, err)
		_, err = svc.MarkDone(ctx, 1)
		require.NoError(t, err)
		saves := store.saves

		_, err = svc.MarkInProgress(ctx, 1)
		var verr *task.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
		assert.Equal(t, saves, store.saves)
		assert.Equal(t, task.StatusDone, listAll(t, svc)[0].Status)

		_, err = svc.MarkDone(ctx, 1)
		require.NoError(t, err, "marking done again is allowed")
	})

	t.Run("unknown task", func(t *testing.T) {
		svc, _, _ := newTestTaskService(t)

		_, err := svc.MarkDone(ctx, 3)
		var nf *task.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestTaskService_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestTaskService(t)

	_, err := svc.Add(ctx, "task", duedate.Omitted())
	require.NoError(t, err)

	clock.Advance(-time.Hour)
	got, err := svc.MarkInProgress(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestTaskService(t)

	add := func(desc, due string) {
		arg := duedate.Omitted()
		if due != "" {
			arg = duedate.FromToken(due)
		}
		_, err := svc.Add(ctx, desc, arg)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	add("no due", "")
	add("late", "2025-10-25")
	add("early", "2025-10-22")

	_, err := svc.MarkDone(ctx, 2)
	require.NoError(t, err)

	t.Run("default sorts by due", func(t *testing.T) {
		tasks, err := svc.List(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"early", "late", "no due"}, descriptions(tasks))
	})

	t.Run("status filter", func(t *testing.T) {
		tasks, err := svc.List(ctx, ListFilter{Status: task.StatusTodo})
		require.NoError(t, err)
		assert.Equal(t, []string{"early", "no due"}, descriptions(tasks))
	})

	t.Run("created sort is newest first", func(t *testing.T) {
		tasks, err := svc.List(ctx, ListFilter{Sort: task.SortCreated})
		require.NoError(t, err)
		assert.Equal(t, []string{"early", "late", "no due"}, descriptions(tasks))
	})

	t.Run("updated sort is newest first", func(t *testing.T) {
		tasks, err := svc.List(ctx, ListFilter{Sort: task.SortUpdated})
		require.NoError(t, err)
		assert.Equal(t, "late", tasks[0].Description)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.List(ctx, ListFilter{Status: "blocked"})
		var serr *task.InvalidStatusFilterError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "blocked", serr.Value)
	})
}

type failingStore struct {
	err error
}

func (f failingStore) Load(context.Context) (*task.Collection, error) {
	return task.NewCollection(), nil
}

func (f failingStore) Save(context.Context, *task.Collection) error {
	return f.err
}

func TestTaskService_SaveErrorPropagates(t *testing.T) {
	ioErr := &task.StoreIOError{Op: "write", Path: "tasks.json", Err: errors.New("read-only file system")}
	svc := NewTaskService(failingStore{err: ioErr}, zerolog.Nop())

	_, err := svc.Add(context.Background(), "task", duedate.Omitted())

	var got *task.StoreIOError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "write", got.Op)
}

func descriptions(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func TestTaskService_Import(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("assigns fresh ids after existing tasks", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)
		_, err := svc.Add(ctx, "existing", duedate.Omitted())
		require.NoError(t, err)

		added, err := svc.Import(ctx, []task.Task{
			{ID: 7, Description: "imported done", Status: task.StatusDone, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
			{ID: 1, Description: "imported todo", Status: task.StatusTodo, CreatedAt: created, UpdatedAt: created.Add(-time.Hour)},
		})
		require.NoError(t, err)
		require.Len(t, added, 2)
		assert.Equal(t, 2, added[0].ID)
		assert.Equal(t, 3, added[1].ID)
		assert.True(t, added[1].UpdatedAt.Equal(created), "updatedAt is clamped to createdAt")
		assert.Equal(t, 2, store.saves)

		tasks := listAll(t, svc)
		assert.Equal(t, []string{"existing", "imported done", "imported todo"}, descriptions(tasks))
		assert.Equal(t, task.StatusDone, tasks[1].Status)
	})

	t.Run("rejects the batch on an invalid task", func(t *testing.T) {
		svc, store, _ := newTestTaskService(t)

		_, err := svc.Import(ctx, []task.Task{
			{Description: "ok", Status: task.StatusTodo},
			{Description: "", Status: task.StatusTodo},
		})

		var verr *task.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "description", verr.Field)
		assert.Equal(t, 0, store.saves)
		assert.Empty(t, listAll(t, svc))
	})
}
