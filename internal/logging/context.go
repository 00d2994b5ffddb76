package logging

import (
	"context"
	"log/slog"

	"github.com/syntrixbase/pager/internal/ctxkeys"
)

// ContextHandler adds request-scoped attributes carried by the record
// context: request_id and collection.
type ContextHandler struct {
	handler slog.Handler
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	var attrs []slog.Attr
	if id := ctxkeys.RequestID(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if name := ctxkeys.Collection(ctx); name != "" {
		attrs = append(attrs, slog.String("collection", name))
	}
	if len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
