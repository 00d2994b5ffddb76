package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

const (
	// DefaultCursorSecret is a placeholder; every real deployment must override it.
	DefaultCursorSecret = "shhhhh"
	// DefaultMethodName is the operation name paginators are registered under.
	DefaultMethodName = "paginateResult"
)

// ErrSettingsFrozen is returned when pager settings are updated after they were read.
var ErrSettingsFrozen = errors.New("pager settings cannot be updated after they have been read")

// PagerConfig holds the process-wide pagination settings.
type PagerConfig struct {
	CursorSecret string `yaml:"cursor_secret"`
	MethodName   string `yaml:"method_name"`
}

// DefaultPagerConfig returns the built-in pager settings.
func DefaultPagerConfig() PagerConfig {
	return PagerConfig{
		CursorSecret: DefaultCursorSecret,
		MethodName:   DefaultMethodName,
	}
}

// ApplyDefaults fills in missing values with defaults
func (c *PagerConfig) ApplyDefaults() {
	if c.CursorSecret == "" {
		c.CursorSecret = DefaultCursorSecret
	}
	if c.MethodName == "" {
		c.MethodName = DefaultMethodName
	}
}

// ApplyEnvOverrides applies environment variable overrides
func (c *PagerConfig) ApplyEnvOverrides() {
	if v := os.Getenv("PAGER_CURSOR_SECRET"); v != "" {
		c.CursorSecret = v
	}
	if v := os.Getenv("PAGER_METHOD_NAME"); v != "" {
		c.MethodName = v
	}
}

// ResolvePaths is a no-op; the pager section has no paths.
func (c *PagerConfig) ResolvePaths(_ string) {}

// Validate validates the configuration
func (c *PagerConfig) Validate() error {
	if c.CursorSecret == "" {
		return fmt.Errorf("pager.cursor_secret cannot be empty")
	}
	if c.MethodName == "" {
		return fmt.Errorf("pager.method_name cannot be empty")
	}
	return nil
}

// UsesPlaceholderSecret reports whether the cursor secret was never overridden.
func (c PagerConfig) UsesPlaceholderSecret() bool {
	return c.CursorSecret == DefaultCursorSecret
}

// Settings is a freeze-on-first-read holder for PagerConfig.
//
// Update may be called any number of times until the first Get. After that
// every Update fails with ErrSettingsFrozen, so codecs and engines built from
// the settings never observe a secret change.
type Settings struct {
	mu     sync.Mutex
	cfg    PagerConfig
	frozen bool
}

// NewSettings creates settings seeded with cfg (defaults fill empty fields).
func NewSettings(cfg PagerConfig) *Settings {
	cfg.ApplyDefaults()
	return &Settings{cfg: cfg}
}

// Update merges the non-empty fields of cfg into the settings.
func (s *Settings) Update(cfg PagerConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSettingsFrozen
	}
	if cfg.CursorSecret != "" {
		s.cfg.CursorSecret = cfg.CursorSecret
	}
	if cfg.MethodName != "" {
		s.cfg.MethodName = cfg.MethodName
	}
	return nil
}

// Get returns the settings and freezes them.
func (s *Settings) Get() PagerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frozen = true
	return s.cfg
}

// Frozen reports whether Get has been called.
func (s *Settings) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}
