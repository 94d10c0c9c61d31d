// Package config loads lessonplan settings.
//
// Precedence, highest first:
//   - environment variables (LESSONPLAN_*)
//   - the TOML file at LESSONPLAN_CONFIG, or ~/.lessonplan/config.toml
//   - DefaultConfig
//
// Values that fail to parse or validate are ignored and the lower layer wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/timeofday"
)

// Config holds all runtime settings.
type Config struct {
	DBPath             string `toml:"db_path"`
	BudgetSeconds      int    `toml:"budget_seconds"`
	WarningBandSeconds int    `toml:"warning_band_seconds"`
	DefaultStartTime   string `toml:"default_start_time"`
	LogUseCases        bool   `toml:"log_use_cases"`
}

// DefaultConfig returns a 90-minute lesson starting at 09:00 stored under dir.
func DefaultConfig(dir string) Config {
	return Config{
		DBPath:             filepath.Join(dir, "lessonplan.db"),
		BudgetSeconds:      domain.DefaultLessonDuration,
		WarningBandSeconds: domain.DefaultWarningBand,
		DefaultStartTime:   "09:00:00",
	}
}

// HomeDir is ~/.lessonplan.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".lessonplan"), nil
}

// Load resolves the configuration from file and environment.
func Load() (Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(dir)

	path := os.Getenv("LESSONPLAN_CONFIG")
	if path == "" {
		path = filepath.Join(dir, "config.toml")
	}
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	cfg.mergeEnv()
	return cfg, nil
}

// mergeFile overlays settings from a TOML file. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if md.IsDefined("db_path") && file.DBPath != "" {
		c.DBPath = file.DBPath
	}
	if md.IsDefined("budget_seconds") && file.BudgetSeconds > 0 {
		c.BudgetSeconds = file.BudgetSeconds
	}
	if md.IsDefined("warning_band_seconds") && file.WarningBandSeconds >= 0 {
		c.WarningBandSeconds = file.WarningBandSeconds
	}
	if md.IsDefined("default_start_time") && timeofday.IsValid(file.DefaultStartTime) {
		c.DefaultStartTime = timeofday.Normalize(file.DefaultStartTime)
	}
	if md.IsDefined("log_use_cases") {
		c.LogUseCases = file.LogUseCases
	}
	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv("LESSONPLAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("LESSONPLAN_BUDGET_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BudgetSeconds = n
		}
	}
	if v := os.Getenv("LESSONPLAN_WARNING_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.WarningBandSeconds = n
		}
	}
	if v := os.Getenv("LESSONPLAN_START"); v != "" && timeofday.IsValid(v) {
		c.DefaultStartTime = timeofday.Normalize(v)
	}
	if v := os.Getenv("LESSONPLAN_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogUseCases = b
		}
	}
}
