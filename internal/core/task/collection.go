package task

import (
	"slices"
	"strconv"
)

// Collection owns every task of a store, keyed by ID. It is loaded in full,
// mutated in memory, and saved in full.
type Collection struct {
	tasks map[int]Task
}

// NewCollection returns a collection holding tasks. Later duplicates of an ID
// replace earlier ones.
func NewCollection(tasks ...Task) *Collection {
	c := &Collection{tasks: make(map[int]Task, len(tasks))}
	for _, t := range tasks {
		c.tasks[t.ID] = t
	}
	return c
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	return len(c.tasks)
}

// NextID returns the ID the next added task receives: the highest existing ID
// plus one, or 1 when empty.
func (c *Collection) NextID() int {
	highest := 0
	for id := range c.tasks {
		highest = max(highest, id)
	}
	return highest + 1
}

// Get returns the task with the given ID.
func (c *Collection) Get(id int) (Task, error) {
	t, ok := c.tasks[id]
	if !ok {
		return Task{}, &NotFoundError{ID: strconv.Itoa(id)}
	}
	return t, nil
}

// Put inserts or replaces a task.
func (c *Collection) Put(t Task) {
	c.tasks[t.ID] = t
}

// Remove deletes the task with the given ID.
func (c *Collection) Remove(id int) error {
	if _, ok := c.tasks[id]; !ok {
		return &NotFoundError{ID: strconv.Itoa(id)}
	}
	delete(c.tasks, id)
	return nil
}

// All returns a copy of every task in ascending ID order.
func (c *Collection) All() []Task {
	out := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Task) int { return a.ID - b.ID })
	return out
}

// Filter returns the tasks with the given status in ascending ID order.
// An empty status matches every task.
func (c *Collection) Filter(status Status) []Task {
	all := c.All()
	if status == "" {
		return all
	}
	return slices.DeleteFunc(all, func(t Task) bool { return t.Status != status })
}
