package server

import (
	"context"
	"net/http"
)

// Service is the HTTP network layer shared by every surface of the process.
type Service interface {
	// Start binds the listener and serves until a fatal error occurs or the
	// context is canceled.
	Start(ctx context.Context) error

	// Stop drains active connections until they finish or ctx expires.
	Stop(ctx context.Context) error

	// RegisterHTTPHandler registers a handler for a pattern.
	// This must be called BEFORE Start().
	RegisterHTTPHandler(pattern string, handler http.Handler)

	// HTTPMux returns the underlying ServeMux for direct route registration.
	// This must be called BEFORE Start().
	HTTPMux() *http.ServeMux

	// Addr returns the bound listener address, or "" before Start.
	Addr() string
}
