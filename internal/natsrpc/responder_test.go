package natsrpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/cursor"
	"github.com/syntrixbase/pager/internal/pager"
	"github.com/syntrixbase/pager/internal/storage"
	"github.com/syntrixbase/pager/pkg/model"
)

func newTestResponder(t *testing.T, opts ...Option) *Responder {
	t.Helper()
	ctx := context.Background()
	store, err := storage.NewDocumentStore(ctx, config.StorageConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	for _, doc := range []model.Document{
		{"id": "u1", "lastName": "Doe", "age": 30},
		{"id": "u2", "lastName": "Doe", "age": 22},
		{"id": "u3", "lastName": "Tanner", "age": 35},
	} {
		_, err := store.Insert(ctx, "users", doc)
		require.NoError(t, err)
	}

	registry, err := pager.NewRegistryFromConfig(
		pager.NewEngine(cursor.NewCodec("natsSecret"), nil),
		config.NewSettings(config.DefaultPagerConfig()),
		store,
		config.CollectionsConfig{
			"users": {
				Sortable:     []string{"age"},
				FilterFields: map[string]config.FilterFieldConfig{"lastName": {}},
			},
		},
	)
	require.NoError(t, err)

	cfg := config.DefaultNATSConfig()
	cfg.Enabled = true
	return NewResponder(registry, cfg, opts...)
}

func TestResponder_Subject(t *testing.T) {
	r := newTestResponder(t)
	assert.Equal(t, "pager.*.*", r.Subject())
	assert.Equal(t, defaultRequestTimeout, r.timeout)
}

func TestResponder_ParseSubject(t *testing.T) {
	r := newTestResponder(t)

	tests := []struct {
		subject    string
		collection string
		method     string
		ok         bool
	}{
		{"pager.users.paginateResult", "users", "paginateResult", true},
		{"other.users.paginateResult", "", "", false},
		{"pager.users", "", "", false},
		{"pager..paginateResult", "", "", false},
		{"pager.users.", "", "", false},
		{"pager.users.a.b", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			collection, method, ok := r.parseSubject(tt.subject)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.collection, collection)
			assert.Equal(t, tt.method, method)
		})
	}
}

func TestResponder_Handle(t *testing.T) {
	r := newTestResponder(t)
	ctx := context.Background()

	reply := r.Handle(ctx, "pager.users.paginateResult", []byte(`{"first": 2, "sort": {"by": "age", "order": "desc"}}`))
	require.Nil(t, reply.Error)
	require.NotNil(t, reply.Data)
	assert.Equal(t, int64(3), reply.Data.TotalCount)
	require.Len(t, reply.Data.Edges, 2)
	assert.Equal(t, "u3", reply.Data.Edges[0].Node.GetID())
	assert.Equal(t, "u1", reply.Data.Edges[1].Node.GetID())
	assert.True(t, reply.Data.PageInfo.HasNextPage)

	next := r.Handle(ctx, "pager.users.paginateResult",
		[]byte(`{"first": 2, "sort": {"by": "age", "order": "desc"}, "after": "`+*reply.Data.PageInfo.EndCursor+`"}`))
	require.Nil(t, next.Error)
	require.Len(t, next.Data.Edges, 1)
	assert.Equal(t, "u2", next.Data.Edges[0].Node.GetID())
	assert.False(t, next.Data.PageInfo.HasNextPage)
	assert.True(t, next.Data.PageInfo.HasPreviousPage)
}

func TestResponder_HandleEmptyPayload(t *testing.T) {
	r := newTestResponder(t)
	reply := r.Handle(context.Background(), "pager.users.paginateResult", nil)
	require.Nil(t, reply.Error)
	assert.Len(t, reply.Data.Edges, 3)

	filtered := r.Handle(context.Background(), "pager.users.paginateResult", []byte(`{"filters": {"lastName": "Doe"}}`))
	require.Nil(t, filtered.Error)
	assert.Equal(t, int64(2), filtered.Data.TotalCount)
}

func TestResponder_HandleErrors(t *testing.T) {
	r := newTestResponder(t, WithMaxPageSize(5))

	tests := []struct {
		name    string
		subject string
		payload string
		code    string
	}{
		{"bad subject", "pager.users", `{}`, codeNotFound},
		{"unknown collection", "pager.nope.paginateResult", `{}`, codeNotFound},
		{"unknown method", "pager.users.list", `{}`, codeNotFound},
		{"malformed payload", "pager.users.paginateResult", `{"first":`, codeBadRequest},
		{"negative first", "pager.users.paginateResult", `{"first": -1}`, codeBadRequest},
		{"above max page size", "pager.users.paginateResult", `{"last": 6}`, codeBadRequest},
		{"conflicting arguments", "pager.users.paginateResult", `{"first": 1, "last": 1}`, codeConflictingArguments},
		{"invalid cursor", "pager.users.paginateResult", `{"before": "nope"}`, codeInvalidCursor},
		{"invalid sort", "pager.users.paginateResult", `{"sort": {"by": "lastName"}}`, codeInvalidSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Handle(context.Background(), tt.subject, []byte(tt.payload))
			assert.Nil(t, reply.Data)
			require.NotNil(t, reply.Error)
			assert.Equal(t, tt.code, reply.Error.Code)
		})
	}
}

func TestReply_JSON(t *testing.T) {
	data, err := json.Marshal(errorReply(model.ErrInvalidCursor))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": {"code": "INVALID_CURSOR", "message": "Invalid cursor"}}`, string(data))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, codeCanceled, errorCode(context.DeadlineExceeded))
	assert.Equal(t, codeInvalidQuery, errorCode(model.ErrInvalidQuery))
	assert.Equal(t, codeInternalError, errorCode(errors.New("boom")))
	assert.Equal(t, "Failed to paginate", errorReply(errors.New("boom")).Error.Message)
}

func TestResponder_Options(t *testing.T) {
	r := newTestResponder(t, WithRequestTimeout(time.Second), WithMaxPageSize(10), WithLogger(nil))
	assert.Equal(t, time.Second, r.timeout)
	assert.Equal(t, 10, r.maxPageSize)
	assert.NotNil(t, r.logger)
}

func TestResponder_StartConnectError(t *testing.T) {
	orig := natsConnectFunc
	defer func() { natsConnectFunc = orig }()

	natsConnectFunc = func(url string, opts ...nats.Option) (*nats.Conn, error) {
		assert.Equal(t, "nats://localhost:4222", url)
		return nil, errors.New("connection refused")
	}

	r := newTestResponder(t)
	err := r.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, r.nc)
}

func TestResponder_StopBeforeStart(t *testing.T) {
	r := newTestResponder(t)
	assert.NoError(t, r.Stop())
}
