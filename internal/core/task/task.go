// Package task defines the task record, its status lifecycle, and the
// in-memory collection the store loads and saves.
package task

import (
	"strconv"
	"time"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every status in rank order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Rank orders statuses for sorting: todo, in-progress, done.
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	}
	return len(Statuses)
}

// CanTransition reports whether a task in s may be marked as next.
// Done is terminal; marking a done task done again is allowed.
func (s Status) CanTransition(next Status) bool {
	if !next.IsValid() {
		return false
	}
	if s == StatusDone {
		return next == StatusDone
	}
	return true
}

// Task is a single tracked task.
type Task struct {
	ID          int
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
}

// Key returns the string form of the ID used as the persisted map key.
func (t Task) Key() string {
	return strconv.Itoa(t.ID)
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsOverdue reports whether the task is past its due date and not done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}

// ParseID converts a command line task ID. Only the canonical decimal form of
// a positive integer is accepted, so "01" does not address task 1.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 || strconv.Itoa(id) != s {
		return 0, &NotFoundError{ID: s}
	}
	return id, nil
}
