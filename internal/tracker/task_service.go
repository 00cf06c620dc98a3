package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/tracker/internal/core/duedate"
	"github.com/colonyops/tracker/internal/core/logging"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/rs/zerolog"
)

// ListFilter controls which tasks List returns and in what order.
type ListFilter struct {
	Status task.Status  // empty means all statuses
	Sort   task.SortKey // zero value sorts by due date
}

// TaskService runs each task operation as one load, mutate, save cycle
// against a task.Store. Input is validated before the collection is touched,
// so a failed operation never writes the store.
type TaskService struct {
	store task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store task.Store, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		log:   logging.From(log, "task-service"),
		now:   time.Now,
	}
}

// SetClock replaces the clock used for timestamps and relative due dates.
func (s *TaskService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service clock's current time.
func (s *TaskService) Now() time.Time {
	return s.now().Round(0)
}

// Add creates a todo task and returns it with its assigned ID.
func (s *TaskService) Add(ctx context.Context, description string, due duedate.Arg) (task.Task, error) {
	if err := validateDescription(description); err != nil {
		return task.Task{}, err
	}

	now := s.Now()
	dueDate, _, err := due.Resolve(now)
	if err != nil {
		return task.Task{}, err
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          tasks.NextID(),
		Description: description,
		Status:      task.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     dueDate,
	}
	tasks.Put(t)

	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Debug().Ctx(logging.WithTaskID(ctx, t.ID)).Bool("due", t.HasDueDate()).Msg("task added")
	return t, nil
}

// Update replaces a task's description and applies the due-date argument:
// omitted leaves the due date, empty clears it, a value sets it.
func (s *TaskService) Update(ctx context.Context, id int, description string, due duedate.Arg) (task.Task, error) {
	if err := validateDescription(description); err != nil {
		return task.Task{}, err
	}

	now := s.Now()
	dueDate, changeDue, err := due.Resolve(now)
	if err != nil {
		return task.Task{}, err
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	t, err := tasks.Get(id)
	if err != nil {
		return task.Task{}, err
	}

	t.Description = description
	if changeDue {
		t.DueDate = dueDate
	}
	touch(&t, now)
	tasks.Put(t)

	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Debug().Ctx(logging.WithTaskID(ctx, id)).Bool("due_changed", changeDue).Msg("task updated")
	return t, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := tasks.Remove(id); err != nil {
		return err
	}

	if err := s.store.Save(ctx, tasks); err != nil {
		return err
	}

	s.log.Debug().Ctx(logging.WithTaskID(ctx, id)).Msg("task deleted")
	return nil
}

// MarkInProgress sets a task's status to in-progress.
func (s *TaskService) MarkInProgress(ctx context.Context, id int) (task.Task, error) {
	return s.setStatus(ctx, id, task.StatusInProgress)
}

// MarkDone sets a task's status to done.
func (s *TaskService) MarkDone(ctx context.Context, id int) (task.Task, error) {
	return s.setStatus(ctx, id, task.StatusDone)
}

func (s *TaskService) setStatus(ctx context.Context, id int, status task.Status) (task.Task, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return task.Task{}, err
	}

	t, err := tasks.Get(id)
	if err != nil {
		return task.Task{}, err
	}

	if !t.Status.CanTransition(status) {
		return task.Task{}, &task.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("task %d is already %s and cannot be marked as %s", id, t.Status, status),
		}
	}

	prev := t.Status
	t.Status = status
	touch(&t, s.Now())
	tasks.Put(t)

	if err := s.store.Save(ctx, tasks); err != nil {
		return task.Task{}, err
	}

	s.log.Debug().Ctx(logging.WithTaskID(ctx, id)).
		Str("from", string(prev)).
		Str("to", string(status)).
		Msg("task status changed")
	return t, nil
}

// List returns the tasks matching filter in the filter's sort order.
func (s *TaskService) List(ctx context.Context, filter ListFilter) ([]task.Task, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &task.InvalidStatusFilterError{Value: string(filter.Status)}
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := tasks.Filter(filter.Status)
	task.Sort(out, filter.Sort)
	return out, nil
}

// Import appends tasks under fresh IDs, keeping their status and
// timestamps. Nothing is written unless every task is valid.
func (s *TaskService) Import(ctx context.Context, incoming []task.Task) ([]task.Task, error) {
	for _, t := range incoming {
		if err := validateDescription(t.Description); err != nil {
			return nil, err
		}
		if !t.Status.IsValid() {
			return nil, &task.ValidationError{Field: "status", Reason: fmt.Sprintf("invalid status %q", t.Status)}
		}
	}

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	added := make([]task.Task, 0, len(incoming))
	for _, t := range incoming {
		t.ID = tasks.NextID()
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		tasks.Put(t)
		added = append(added, t)
	}

	if err := s.store.Save(ctx, tasks); err != nil {
		return nil, err
	}

	s.log.Debug().Ctx(ctx).Int("count", len(added)).Msg("tasks imported")
	return added, nil
}

func validateDescription(description string) error {
	if description == "" {
		return &task.ValidationError{Field: "description", Reason: "task description cannot be empty"}
	}
	return nil
}

// touch refreshes UpdatedAt without letting it fall before CreatedAt.
func touch(t *task.Task, now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}
