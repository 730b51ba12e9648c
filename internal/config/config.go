// Package config handles the XDG configuration directory and backend settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// BackendURLEnv names the variable holding the backend base URL.
	BackendURLEnv = "TASKLIST_BACKEND_URL"

	// TimeoutEnv names the variable holding an optional per-request timeout
	// (a time.ParseDuration string). Unset means no timeout.
	TimeoutEnv = "TASKLIST_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend base URL, e.g. http://localhost:5000.
	// Not validated: a bad value fails at request time.
	BaseURL string

	// Timeout bounds each backend request. Zero means none.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
//
// Backend settings come from the process environment, falling back to
// Dir/.env. A missing .env is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	fileEnv, err := cfg.readEnvFile()
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	}

	cfg.BaseURL = lookup(BackendURLEnv)

	if raw := lookup(TimeoutEnv); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid %s: %q", TimeoutEnv, raw)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// HasEnvFile checks if the dotenv file exists.
func (c *Config) HasEnvFile() bool {
	_, err := os.Stat(c.EnvPath())
	return err == nil
}

func (c *Config) readEnvFile() (map[string]string, error) {
	values, err := godotenv.Read(c.EnvPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("invalid %s: %w", c.EnvPath(), err)
	}
	return values, nil
}
