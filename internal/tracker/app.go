// Package tracker wires the task store and services behind a single App that
// commands consume.
package tracker

import (
	"github.com/colonyops/tracker/internal/core/config"
	"github.com/colonyops/tracker/internal/core/logging"
	"github.com/colonyops/tracker/internal/store/jsonfile"
	"github.com/rs/zerolog"
)

// App is the central entry point for all tracker operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *TaskService
	Config *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(tasks *TaskService, cfg *config.Config) *App {
	return &App{
		Tasks:  tasks,
		Config: cfg,
	}
}

// NewFromConfig builds the JSON file store named by cfg and an App around it.
func NewFromConfig(cfg *config.Config, log zerolog.Logger) *App {
	store := jsonfile.NewTaskStore(cfg.StoreFile, logging.From(log, "store"))
	return NewApp(NewTaskService(store, log), cfg)
}
