package gateway

import (
	"log/slog"
	"net/http"

	gatewayconfig "github.com/syntrixbase/pager/internal/gateway/config"
	"github.com/syntrixbase/pager/internal/gateway/rest"
	"github.com/syntrixbase/pager/internal/pager"
)

// Server is a route registrar for the API layer.
// It registers the REST paginate routes and optional operational routes.
type Server struct {
	rest    *rest.Handler
	metrics http.Handler
}

// ServerOption is a function that configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the logger handed to the REST handler.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// WithMetricsHandler exposes h at GET /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(c *serverConfig) {
		c.metrics = h
	}
}

// NewServer creates a new API Server (route registrar).
func NewServer(registry *pager.Registry, cfg gatewayconfig.GatewayConfig, opts ...ServerOption) *Server {
	sc := &serverConfig{}
	for _, opt := range opts {
		opt(sc)
	}

	return &Server{
		rest:    rest.NewHandler(registry, cfg, sc.logger),
		metrics: sc.metrics,
	}
}

// RegisterRoutes registers all API routes to the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	s.rest.RegisterRoutes(mux)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
}
