package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// GatewayConfig configures the REST surface.
type GatewayConfig struct {
	// BasePath prefixes every paginate route.
	BasePath string `yaml:"base_path"`
	// MaxBodySize caps POST bodies in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`
	// MaxPageSize rejects first/last above it; zero means no cap.
	MaxPageSize int `yaml:"max_page_size"`
}

func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		BasePath:    "/api/v1",
		MaxBodySize: 1 << 20,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (g *GatewayConfig) ApplyDefaults() {
	defaults := DefaultGatewayConfig()
	if g.BasePath == "" {
		g.BasePath = defaults.BasePath
	}
	g.BasePath = "/" + strings.Trim(g.BasePath, "/")
	if g.MaxBodySize == 0 {
		g.MaxBodySize = defaults.MaxBodySize
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (g *GatewayConfig) ApplyEnvOverrides() {
	if val := os.Getenv("PAGER_MAX_PAGE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			g.MaxPageSize = n
		}
	}
}

// ResolvePaths is a no-op; the gateway config holds no file paths.
func (g *GatewayConfig) ResolvePaths(_ string) {}

// Validate returns an error if the configuration is invalid.
func (g *GatewayConfig) Validate() error {
	if g.MaxBodySize < 0 {
		return fmt.Errorf("gateway.max_body_size cannot be negative")
	}
	if g.MaxPageSize < 0 {
		return fmt.Errorf("gateway.max_page_size cannot be negative")
	}
	if strings.ContainsAny(g.BasePath, "{} ") {
		return fmt.Errorf("invalid gateway.base_path: %q", g.BasePath)
	}
	return nil
}
