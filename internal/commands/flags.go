package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/tracker/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path under the user's
// config directory ($XDG_CONFIG_HOME on Linux).
func DefaultConfigPath() string {
	configHome, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tracker", "config.yaml")
}
