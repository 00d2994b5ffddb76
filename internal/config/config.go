package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gateway "github.com/syntrixbase/pager/internal/gateway/config"
	"github.com/syntrixbase/pager/internal/server"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Pager   PagerConfig           `yaml:"pager"`
	Server  server.Config         `yaml:"server"`
	Gateway gateway.GatewayConfig `yaml:"gateway"`
	Storage StorageConfig         `yaml:"storage"`
	NATS    NATSConfig            `yaml:"nats"`
	Logging LoggingConfig         `yaml:"logging"`

	Collections CollectionsConfig `yaml:"collections"`
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Pager:       DefaultPagerConfig(),
		Server:      server.DefaultConfig(),
		Gateway:     gateway.DefaultGatewayConfig(),
		Storage:     DefaultStorageConfig(),
		NATS:        DefaultNATSConfig(),
		Logging:     DefaultLoggingConfig(),
		Collections: CollectionsConfig{},
	}
}

// LoadConfig loads configuration from files and environment variables
// Order: defaults -> config.yml -> config.local.yml -> ApplyEnvOverrides -> ResolvePaths -> Validate
func LoadConfig(configDir string) (*Config, error) {
	// 1. Start with default values (so YAML can override them, including bool fields)
	cfg := Default()

	// 2. Load config.yml (overrides defaults)
	loadFile(filepath.Join(configDir, "config.yml"), cfg)

	// 3. Load config.local.yml (overrides config.yml)
	loadFile(filepath.Join(configDir, "config.local.yml"), cfg)

	// 4. Apply configuration lifecycle
	if err := ApplyServiceConfigs(configDir,
		&cfg.Pager,
		&cfg.Server,
		&cfg.Gateway,
		&cfg.Storage,
		&cfg.NATS,
		&cfg.Logging,
		&cfg.Collections,
	); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return // File doesn't exist, skip
		}
		slog.Warn("Error reading config file", "file", filename, "error", err)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("Error parsing config file", "file", filename, "error", err)
	}
}
