// Package config handles XDG configuration directory, file paths and the
// optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// SessionFile is the persisted session filename.
	SessionFile = "session.json"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// DefaultAPIURL is used when no base URL is configured anywhere.
	DefaultAPIURL = "http://localhost:8080/api/v1"

	// APIURLEnv overrides the base URL from config.yaml.
	APIURLEnv = "TASKBOARD_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base endpoint all resource paths are joined to.
	APIURL string

	// Timeout bounds each API request. Zero leaves the transport default.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// settings mirrors config.yaml.
type settings struct {
	APIURL  string `yaml:"api_url"`
	Timeout string `yaml:"timeout"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// The base URL is resolved from apiURL, then TASKBOARD_API_URL, then
// config.yaml, then DefaultAPIURL.
func New(configDir, apiURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	s, err := loadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in %s: %q", SettingsFile, s.Timeout)
		}
		cfg.Timeout = d
	}

	switch {
	case apiURL != "":
		cfg.APIURL = apiURL
	case os.Getenv(APIURLEnv) != "":
		cfg.APIURL = os.Getenv(APIURLEnv)
	case s.APIURL != "":
		cfg.APIURL = s.APIURL
	default:
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return cfg, nil
}

// loadSettings reads config.yaml. A missing file yields zero settings.
func loadSettings(path string) (settings, error) {
	var s settings
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
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

// SessionPath returns the path to the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}
