package task

import (
	"fmt"
	"strings"
)

// ValidationError is returned when input is rejected before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError is returned when no task has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %s not found", e.ID)
}

// InvalidStatusFilterError is returned when list is given an unknown status.
type InvalidStatusFilterError struct {
	Value string
}

func (e *InvalidStatusFilterError) Error() string {
	statuses := make([]string, len(Statuses))
	for i, s := range Statuses {
		statuses[i] = string(s)
	}
	return fmt.Sprintf("invalid status %q: use one of %s (sort by %s)",
		e.Value, strings.Join(statuses, ", "), strings.Join(SortKeyNames(), ", "))
}

// StoreIOError wraps a read or write failure of the persisted store.
// A missing store file is not an error.
type StoreIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("%s task store %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreIOError) Unwrap() error {
	return e.Err
}
