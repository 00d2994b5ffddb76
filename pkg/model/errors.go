package model

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrConflictingArguments is returned when a page request sets both first and last
	ErrConflictingArguments = errors.New("first and last cannot be set at the same time")
	// ErrInvalidCursor is returned when an after/before cursor fails verification or decoding
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidSort is returned when a sort field is not declared sortable for a collection
	ErrInvalidSort = errors.New("invalid sort")
	// ErrNotFound is returned when a collection or method is not registered
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned when a page request is malformed or out of range
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidQuery is returned when a query is malformed
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCanceled is returned when the operation is canceled by the client
	ErrCanceled = errors.New("operation canceled")
)

// WrapError wraps storage errors to model errors.
// It converts context.Canceled and context.DeadlineExceeded to ErrCanceled.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsCanceled(err) {
		return ErrCanceled
	}
	return err
}

// IsCanceled returns true if the error is due to context cancellation or deadline exceeded.
// It checks both direct context errors and wrapped errors (e.g., from MongoDB driver).
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, ErrCanceled) {
		return true
	}
	// Check for wrapped context errors (e.g., from MongoDB driver)
	errStr := err.Error()
	return strings.Contains(errStr, "context canceled") || strings.Contains(errStr, "context deadline exceeded")
}
