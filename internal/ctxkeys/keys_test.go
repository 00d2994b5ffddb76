package ctxkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
	assert.Empty(t, RequestID(nil))
}

func TestCollection(t *testing.T) {
	ctx := WithCollection(WithRequestID(context.Background(), "req-1"), "users")
	assert.Equal(t, "users", Collection(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, Collection(context.Background()))
	assert.Empty(t, Collection(nil))
}

func TestKeysDoNotCollideWithStrings(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "plain")
	assert.Empty(t, RequestID(ctx))
}
