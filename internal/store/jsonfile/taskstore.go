// Package jsonfile persists tasks as a single JSON document on disk.
package jsonfile

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/colonyops/tracker/internal/core/task"
	"github.com/rs/zerolog"
)

// DefaultPath is the store file used when none is configured.
const DefaultPath = "tasks.json"

// TaskFile is the root JSON structure stored on disk: task records keyed by
// the string form of their ID.
type TaskFile map[string]Record

// Record is the on-disk form of a task. The ID lives in the map key.
type Record struct {
	Description string      `json:"description"`
	Status      task.Status `json:"status"`
	CreatedAt   Timestamp   `json:"createdAt"`
	UpdatedAt   Timestamp   `json:"updatedAt"`
	DueDate     *Timestamp  `json:"dueDate,omitempty"`
}

// TaskStore implements task.Store using a JSON file for persistence.
type TaskStore struct {
	path string
	log  zerolog.Logger
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a new JSON file task store at the given path.
func NewTaskStore(path string, log zerolog.Logger) *TaskStore {
	return &TaskStore{path: path, log: log}
}

// Path returns the store file location.
func (s *TaskStore) Path() string {
	return s.path
}

// Load reads every task from disk. A missing or empty file is an empty
// store. A file that cannot be decoded is moved aside and also treated as
// empty.
func (s *TaskStore) Load(ctx context.Context) (*task.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return task.NewCollection(), nil
		}
		return nil, &task.StoreIOError{Op: "read", Path: s.path, Err: err}
	}

	if len(data) == 0 {
		return task.NewCollection(), nil
	}

	tasks, err := decode(data)
	if err != nil {
		backup, qerr := s.quarantine()
		s.log.Warn().Ctx(ctx).
			Err(err).
			Str("path", s.path).
			Str("backup", backup).
			AnErr("backup_err", qerr).
			Msg("task store unreadable, starting empty")
		return task.NewCollection(), nil
	}

	return task.NewCollection(tasks...), nil
}

// Save writes every task to disk atomically.
func (s *TaskStore) Save(ctx context.Context, c *task.Collection) error {
	if err := s.save(NewTaskFile(c.All())); err != nil {
		return &task.StoreIOError{Op: "write", Path: s.path, Err: err}
	}

	s.log.Debug().Ctx(ctx).Str("path", s.path).Int("tasks", c.Len()).Msg("task store saved")
	return nil
}

func decode(data []byte) ([]task.Task, error) {
	var file TaskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Tasks()
}

// Tasks converts the document to tasks in ascending ID order.
func (f TaskFile) Tasks() ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(f))
	for key, rec := range f {
		// Keys must be canonical so no two keys name the same task.
		id, err := task.ParseID(key)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", key)
		}
		if !rec.Status.IsValid() {
			return nil, fmt.Errorf("task %s: invalid status %q", key, rec.Status)
		}

		t := task.Task{
			ID:          id,
			Description: rec.Description,
			Status:      rec.Status,
			CreatedAt:   rec.CreatedAt.Time(),
			UpdatedAt:   rec.UpdatedAt.Time(),
		}
		if rec.DueDate != nil {
			due := rec.DueDate.Time()
			t.DueDate = &due
		}
		tasks = append(tasks, t)
	}

	slices.SortFunc(tasks, func(a, b task.Task) int { return cmp.Compare(a.ID, b.ID) })
	return tasks, nil
}

// NewTaskFile builds the on-disk document for tasks.
func NewTaskFile(tasks []task.Task) TaskFile {
	file := make(TaskFile, len(tasks))
	for _, t := range tasks {
		rec := Record{
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   Timestamp(t.CreatedAt),
			UpdatedAt:   Timestamp(t.UpdatedAt),
		}
		if t.DueDate != nil {
			due := Timestamp(*t.DueDate)
			rec.DueDate = &due
		}
		file[t.Key()] = rec
	}
	return file
}

// quarantine moves an undecodable store file out of the way so the next save
// does not overwrite it.
func (s *TaskStore) quarantine() (string, error) {
	backup := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(s.path, backup); err != nil {
		return "", err
	}
	return backup, nil
}

// save writes the task file to disk atomically.
func (s *TaskStore) save(file TaskFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, s.path)
}

func writeSynced(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
