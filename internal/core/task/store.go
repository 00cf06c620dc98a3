package task

import "context"

// Store defines whole-collection task persistence. Every operation loads the
// full collection, mutates it in memory, and saves it back.
type Store interface {
	// Load returns every persisted task. A missing or unreadable store
	// yields an empty collection; other I/O failures return *StoreIOError.
	Load(ctx context.Context) (*Collection, error)

	// Save replaces the persisted tasks with c.
	// Failures return *StoreIOError.
	Save(ctx context.Context, c *Collection) error
}
