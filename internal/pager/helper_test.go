package pager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/cursor"
	"github.com/syntrixbase/pager/internal/storage"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
)

var userFixtures = []model.Document{
	{"id": "u1", "firstName": "John", "lastName": "Doe", "age": 30},
	{"id": "u2", "firstName": "Alana", "lastName": "Doe", "age": 22},
	{"id": "u3", "firstName": "Jane", "lastName": "Doe", "age": 41},
	{"id": "u4", "firstName": "Rosamond", "lastName": "Tanner", "age": 35},
	{"id": "u5", "firstName": "Foo", "lastName": "Bar", "age": 19},
	{"id": "u6", "firstName": "Anona", "lastName": "Ivor", "age": 27},
}

func newMemoryStore(t testing.TB, docs ...model.Document) types.DocumentStore {
	ctx := context.Background()
	store, err := storage.NewDocumentStore(ctx, config.StorageConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	for _, doc := range docs {
		_, err := store.Insert(ctx, "users", doc)
		require.NoError(t, err)
	}
	return store
}

func newTestEngine() *Engine {
	return NewEngine(cursor.NewCodec("mySecret"), nil)
}

func edgeIDs(conn *model.Connection) []string {
	out := make([]string, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, e.Node.GetID())
	}
	return out
}

func lastNames(conn *model.Connection) []string {
	out := make([]string, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, e.Node["lastName"].(string))
	}
	return out
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Count(ctx context.Context, filter model.Predicate) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Find(ctx context.Context, q types.FindQuery) ([]model.Document, error) {
	args := m.Called(ctx, q)
	docs, _ := args.Get(0).([]model.Document)
	return docs, args.Error(1)
}
