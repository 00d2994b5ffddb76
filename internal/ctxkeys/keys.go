// Package ctxkeys holds the request-scoped context keys shared by the
// logging, server and surface packages.
package ctxkeys

import "context"

// Key is the type for all context keys in the application.
type Key string

const (
	KeyRequestID  Key = "request_id"
	KeyCollection Key = "collection"
)

// WithRequestID returns a context carrying id as the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, KeyRequestID, id)
}

// RequestID returns the request id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}

// WithCollection returns a context carrying the paginated collection name.
func WithCollection(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, KeyCollection, name)
}

// Collection returns the collection stored by WithCollection, or "".
func Collection(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	name, _ := ctx.Value(KeyCollection).(string)
	return name
}
