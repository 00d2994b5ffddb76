package config

import (
	"fmt"
	"os"
	"strings"
)

// NATSConfig configures the NATS request/reply surface.
type NATSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
	QueueGroup    string `yaml:"queue_group"`
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           "nats://localhost:4222",
		SubjectPrefix: "pager",
		QueueGroup:    "pager",
	}
}

// ApplyDefaults fills in missing values with defaults
func (c *NATSConfig) ApplyDefaults() {
	defaults := DefaultNATSConfig()
	if c.URL == "" {
		c.URL = defaults.URL
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = defaults.SubjectPrefix
	}
	if c.QueueGroup == "" {
		c.QueueGroup = defaults.QueueGroup
	}
}

// ApplyEnvOverrides applies environment variable overrides
func (c *NATSConfig) ApplyEnvOverrides() {
	if v := os.Getenv("PAGER_NATS_URL"); v != "" {
		c.URL = v
		c.Enabled = true
	}
}

func (c *NATSConfig) ResolvePaths(_ string) {}

// Validate validates the configuration
func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" {
		return fmt.Errorf("nats.url is required when nats is enabled")
	}
	if strings.ContainsAny(c.SubjectPrefix, " *>") {
		return fmt.Errorf("invalid nats.subject_prefix: %q", c.SubjectPrefix)
	}
	return nil
}
