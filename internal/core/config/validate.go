package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/tracker/internal/core/styles"
	"github.com/colonyops/tracker/internal/core/task"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("store_file", c.StoreFile, notEmpty),
		criterio.Run("color", c.Color, validColor),
		criterio.Run("theme", c.Theme, validTheme),
		criterio.Run("default_sort", c.DefaultSort, validSortKey),
	)
}

// ValidateDeep performs Validate and then checks that the config file and
// the store location are usable. An empty configPath skips the config file
// check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateStoreFile(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateStoreFile checks that the store is a regular file or absent, and
// that its parent is a directory or absent.
func (c *Config) validateStoreFile() error {
	var errs criterio.FieldErrorsBuilder

	if info, err := os.Stat(c.StoreFile); err == nil && info.IsDir() {
		errs = errs.Append("store_file", fmt.Errorf("%s is a directory, not a file", c.StoreFile))
	}

	if err := isDirectoryOrNotExist(filepath.Dir(c.StoreFile)); err != nil {
		errs = errs.Append("store_file", err)
	}

	return errs.ToError()
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func validColor(s string) error {
	if !styles.ColorMode(s).IsValid() {
		return fmt.Errorf("invalid color mode %q: must be one of auto, always, never", s)
	}
	return nil
}

func validTheme(s string) error {
	if _, ok := styles.GetPalette(s); !ok {
		return fmt.Errorf("unknown theme %q: must be one of %s", s, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validSortKey(s string) error {
	if _, ok := task.ParseSortKey(s); !ok {
		return fmt.Errorf("invalid sort key %q: must be one of %s", s, strings.Join(task.SortKeyNames(), ", "))
	}
	return nil
}
