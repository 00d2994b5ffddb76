package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// LoggingConfig selects where pager logs go. Console and file outputs
// inherit the top-level level and format unless they set their own.
type LoggingConfig struct {
	Level    string         `yaml:"level"`
	Format   string         `yaml:"format"`
	Dir      string         `yaml:"dir"`
	Rotation RotationConfig `yaml:"rotation"`
	Console  OutputConfig   `yaml:"console"`
	File     OutputConfig   `yaml:"file"`
}

// RotationConfig is handed to lumberjack for pager.log and errors.log.
type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"` // MB
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"` // days
	Compress   bool `yaml:"compress"`
}

type OutputConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

func DefaultLoggingConfig() LoggingConfig {
	cfg := LoggingConfig{
		Console:  OutputConfig{Enabled: true},
		File:     OutputConfig{Enabled: true},
		Rotation: RotationConfig{Compress: true},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields. An output section left entirely empty
// is enabled. Compress stays as written since false cannot be told apart
// from unset.
func (c *LoggingConfig) ApplyDefaults() {
	c.Level = orDefault(c.Level, "info")
	c.Format = orDefault(c.Format, "text")
	c.Dir = orDefault(c.Dir, "logs")

	if c.Rotation.MaxSize == 0 {
		c.Rotation.MaxSize = 100
	}
	if c.Rotation.MaxBackups == 0 {
		c.Rotation.MaxBackups = 10
	}
	if c.Rotation.MaxAge == 0 {
		c.Rotation.MaxAge = 30
	}

	for _, out := range []*OutputConfig{&c.Console, &c.File} {
		if *out == (OutputConfig{}) {
			out.Enabled = true
		}
		out.Level = orDefault(out.Level, c.Level)
		out.Format = orDefault(out.Format, c.Format)
	}
}

// ApplyEnvOverrides reads PAGER_LOG_LEVEL, PAGER_LOG_FORMAT and PAGER_LOG_DIR.
// Level and format apply to both outputs.
func (c *LoggingConfig) ApplyEnvOverrides() {
	if v := os.Getenv("PAGER_LOG_LEVEL"); v != "" {
		c.Level, c.Console.Level, c.File.Level = v, v, v
	}
	if v := os.Getenv("PAGER_LOG_FORMAT"); v != "" {
		c.Format, c.Console.Format, c.File.Format = v, v, v
	}
	if v := os.Getenv("PAGER_LOG_DIR"); v != "" {
		c.Dir = v
	}
}

// ResolvePaths places a relative log dir next to the config directory.
// A dir starting with ".." is taken relative to the config directory itself.
func (c *LoggingConfig) ResolvePaths(configDir string) {
	if c.Dir == "" || filepath.IsAbs(c.Dir) {
		return
	}
	base := filepath.Dir(configDir)
	if strings.HasPrefix(c.Dir, "..") {
		base = configDir
	}
	c.Dir = filepath.Join(base, c.Dir)
}

func (c *LoggingConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of %s)", c.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Format)
	}
	if c.Dir == "" {
		return fmt.Errorf("log directory cannot be empty")
	}

	for name, out := range map[string]OutputConfig{"console": c.Console, "file": c.File} {
		if !out.Enabled {
			continue
		}
		if out.Level != "" && !slices.Contains(logLevels, out.Level) {
			return fmt.Errorf("invalid %s log level: %s", name, out.Level)
		}
		if out.Format != "" && !slices.Contains(logFormats, out.Format) {
			return fmt.Errorf("invalid %s log format: %s", name, out.Format)
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
