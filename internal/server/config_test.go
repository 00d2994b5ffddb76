package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPIdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.EnableCORS)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name    string
		initial Config
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "empty config gets all defaults",
			initial: Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), *cfg)
			},
		},
		{
			name: "custom values preserved",
			initial: Config{
				Host:             "0.0.0.0",
				HTTPPort:         8081,
				HTTPReadTimeout:  30 * time.Second,
				HTTPWriteTimeout: 30 * time.Second,
				HTTPIdleTimeout:  120 * time.Second,
				RequestTimeout:   5 * time.Second,
				EnableCORS:       true,
				AllowedOrigins:   []string{"https://app.example.com"},
				AllowedMethods:   []string{"GET"},
				CORSMaxAge:       60,
				ShutdownTimeout:  30 * time.Second,
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.Host)
				assert.Equal(t, 8081, cfg.HTTPPort)
				assert.Equal(t, 120*time.Second, cfg.HTTPIdleTimeout)
				assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
				assert.True(t, cfg.EnableCORS)
				assert.Equal(t, []string{"GET"}, cfg.AllowedMethods)
				assert.Equal(t, []string{"Content-Type", "Authorization", "X-Request-ID"}, cfg.AllowedHeaders)
				assert.Equal(t, 60, cfg.CORSMaxAge)
				assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name:    "partial config gets remaining defaults",
			initial: Config{Host: "prod.example.com", HTTPPort: 80},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prod.example.com", cfg.Host)
				assert.Equal(t, 80, cfg.HTTPPort)
				assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
				assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			cfg.ApplyDefaults()
			tt.check(t, &cfg)
		})
	}
}

func TestConfig_NoOpLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	cfg.ResolvePaths("/some/base/dir")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero config", Config{}, ""},
		{"defaults", DefaultConfig(), ""},
		{"port too large", Config{HTTPPort: 70000}, "invalid http_port"},
		{"negative port", Config{HTTPPort: -1}, "invalid http_port"},
		{"negative timeout", Config{RequestTimeout: -time.Second}, "request_timeout"},
		{"credentials with wildcard", Config{AllowCredentials: true, AllowedOrigins: []string{"*"}}, "wildcard"},
		{"credentials with origin", Config{AllowCredentials: true, AllowedOrigins: []string{"https://a.example"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
