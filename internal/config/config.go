// Package config resolves runtime settings from defaults, TOML files and the environment.
//
// Priority, lowest first:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/tasklist/config.toml)
//  3. Project config file (.tasklist.toml in the working directory)
//  4. File named with --config
//  5. Environment variables (TASKLIST_*, NO_COLOR)
//
// CLI flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultFile      = "tasks.json"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ProjectFileName = ".tasklist.toml"
	appDirName      = "tasklist"
	userFileName    = "config.toml"
)

// Config holds all settings.
type Config struct {
	File        string `toml:"file"`
	Theme       string `toml:"theme"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogFile     string `toml:"log_file"`
	KeepCorrupt bool   `toml:"keep_corrupt"`
	NoColor     bool   `toml:"no_color"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		File:        DefaultFile,
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		KeepCorrupt: true,
	}
}

// Loader knows where to look. Zero paths are skipped.
type Loader struct {
	UserFile    string
	ProjectFile string
	Getenv      func(string) string
}

// DefaultLoader looks in the OS config dir and the working directory.
func DefaultLoader() Loader {
	ld := Loader{
		ProjectFile: ProjectFileName,
		Getenv:      os.Getenv,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		ld.UserFile = filepath.Join(dir, appDirName, userFileName)
	}
	return ld
}

// Load builds a Config. explicit, when set, must exist.
func (ld Loader) Load(explicit string) (*Config, error) {
	cfg := Default()

	for _, p := range []string{ld.UserFile, ld.ProjectFile} {
		if p == "" {
			continue
		}
		if err := decodeOptional(cfg, p); err != nil {
			return nil, err
		}
	}

	if explicit != "" {
		if _, err := toml.DecodeFile(explicit, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}

	getenv := ld.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := loadFromEnv(cfg, getenv); err != nil {
		return nil, err
	}

	cfg.normalize()
	return cfg, nil
}

func decodeOptional(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("TASKLIST_FILE"); v != "" {
		cfg.File = v
	}
	if v := getenv("TASKLIST_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv("TASKLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("TASKLIST_KEEP_CORRUPT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKLIST_KEEP_CORRUPT: %w", err)
		}
		cfg.KeepCorrupt = b
	}
	// https://no-color.org: any non-empty value disables color.
	if getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return nil
}

func (c *Config) normalize() {
	c.File = strings.TrimSpace(c.File)
	if c.File == "" {
		c.File = DefaultFile
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}
