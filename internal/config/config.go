package config

import (
	"fmt"
	"time"
)

type Config struct {
	Backup       BackupConfig  `yaml:"backup"`
	Logging      LoggingConfig `yaml:"logging"`
	History      HistoryConfig `yaml:"history"`
	ConfigReload ReloadConfig  `yaml:"configReload"`
}

type BackupConfig struct {
	SourcePath      string `yaml:"sourcePath"`
	DestinationPath string `yaml:"destinationPath"`
	IntervalMinutes int    `yaml:"intervalMinutes"`
	MaxSnapshots    int    `yaml:"maxSnapshots"`
	Enabled         bool   `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

type HistoryConfig struct {
	Path string `yaml:"path"` // sqlite file for cycle history; empty disables
}

type ReloadConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 5s
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

// Default returns the configuration used when fields are absent from the
// config file.
func Default() *Config {
	return &Config{
		Backup: BackupConfig{
			IntervalMinutes: 60,
			MaxSnapshots:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		ConfigReload: ReloadConfig{
			Mode:           "auto",
			PollInterval:   5 * time.Second,
			DebounceWindow: 500 * time.Millisecond,
		},
	}
}

// Validate rejects values the scheduler cannot work with. A non-positive
// interval is only an error when automatic backups are enabled; the
// scheduler treats it as "disabled" otherwise.
func (c *Config) Validate() error {
	if c.Backup.MaxSnapshots < 1 {
		return fmt.Errorf("backup.maxSnapshots must be at least 1, got %d", c.Backup.MaxSnapshots)
	}
	if c.Backup.Enabled && c.Backup.IntervalMinutes < 1 {
		return fmt.Errorf("backup.intervalMinutes must be at least 1 when enabled, got %d", c.Backup.IntervalMinutes)
	}
	return nil
}
