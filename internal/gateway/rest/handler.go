package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gatewayconfig "github.com/syntrixbase/pager/internal/gateway/config"
	"github.com/syntrixbase/pager/internal/pager"
	"github.com/syntrixbase/pager/internal/server"
	"github.com/syntrixbase/pager/pkg/model"
)

// Handler exposes every registered paginator over HTTP.
type Handler struct {
	registry *pager.Registry
	cfg      gatewayconfig.GatewayConfig
	logger   *slog.Logger
}

func NewHandler(registry *pager.Registry, cfg gatewayconfig.GatewayConfig, logger *slog.Logger) *Handler {
	if registry == nil {
		panic("pager registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry: registry,
		cfg:      cfg,
		logger:   logger.With("component", "rest"),
	}
}

// APIError represents a structured error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeConflictingArguments = "CONFLICTING_ARGUMENTS"
	ErrCodeInvalidCursor        = "INVALID_CURSOR"
	ErrCodeInvalidSort          = "INVALID_SORT"
	ErrCodeInvalidQuery         = "INVALID_QUERY"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeRequestTooLarge      = "REQUEST_TOO_LARGE"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// writeError writes a structured JSON error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		slog.Warn("Failed to encode error response", "error", err)
	}
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// writeInternalError answers 499 when the client went away and 500 otherwise.
func (h *Handler) writeInternalError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	if model.IsCanceled(err) {
		w.WriteHeader(server.StatusClientClosedRequest)
		return
	}
	h.logger.ErrorContext(ctx, message, "error", err)
	writeError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// writePagerError maps registry and engine errors to responses.
func (h *Handler) writePagerError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, model.ErrConflictingArguments):
		writeError(w, http.StatusBadRequest, ErrCodeConflictingArguments, err.Error())
	case errors.Is(err, model.ErrInvalidCursor):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidCursor, "Invalid cursor")
	case errors.Is(err, model.ErrInvalidSort):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidSort, err.Error())
	case errors.Is(err, model.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidQuery, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		h.writeInternalError(ctx, w, err, "Failed to paginate")
	}
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

func (h *Handler) prefix() string {
	return strings.TrimSuffix(h.cfg.BasePath, "/")
}

// RegisterRoutes registers the paginate and discovery routes.
// Request ID, recovery and timeouts come from the server middleware.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	base := h.prefix()

	mux.HandleFunc("GET "+base+"/collections", h.handleCollections)
	mux.HandleFunc("GET "+base+"/{collection}/{method}", h.handlePaginateQuery)
	mux.HandleFunc("POST "+base+"/{collection}/{method}", maxBodySize(h.handlePaginateBody, h.cfg.MaxBodySize))

	mux.HandleFunc("GET /health", h.handleHealth)
}
