// Package memory implements an in-process document store. Predicates are
// compiled to CEL programs and evaluated against every stored document.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
)

type documentStore struct {
	mu          sync.RWMutex
	collections map[string][]model.Document
	compiler    *compiler
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() (types.DocumentStore, error) {
	c, err := newCompiler()
	if err != nil {
		return nil, err
	}
	return &documentStore{
		collections: make(map[string][]model.Document),
		compiler:    c,
	}, nil
}

func (s *documentStore) Collection(name string) types.Collection {
	return &collection{store: s, name: name}
}

func (s *documentStore) Insert(ctx context.Context, coll string, doc model.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", model.WrapError(err)
	}

	data := make(model.Document, len(doc)+1)
	for k, v := range doc {
		data[k] = v
	}
	if err := data.ValidateDocument(); err != nil {
		return "", err
	}
	if data.MissingID() {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		data.SetID(id.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := data[model.IDField]
	for _, existing := range s.collections[coll] {
		if compareValues(existing[model.IDField], id) == 0 {
			return "", fmt.Errorf("document %v already exists in %s", id, coll)
		}
	}
	s.collections[coll] = append(s.collections[coll], data)
	return fmt.Sprint(id), nil
}

func (s *documentStore) Close(ctx context.Context) error {
	return nil
}

type collection struct {
	store *documentStore
	name  string
}

// matching returns the documents satisfying filter, in insertion order.
func (c *collection) matching(ctx context.Context, filter model.Predicate) ([]model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapError(err)
	}

	prg, err := c.store.compiler.compile(filter)
	if err != nil {
		return nil, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var out []model.Document
	for _, doc := range c.store.collections[c.name] {
		if evaluate(prg, doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (c *collection) Count(ctx context.Context, filter model.Predicate) (int64, error) {
	docs, err := c.matching(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (c *collection) Find(ctx context.Context, q types.FindQuery) ([]model.Document, error) {
	docs, err := c.matching(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(docs, func(i, j int) bool {
			return compareDocuments(docs[i], docs[j], q.Sort) < 0
		})
	}

	if q.Skip > 0 {
		if q.Skip >= int64(len(docs)) {
			docs = nil
		} else {
			docs = docs[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(docs)) > q.Limit {
		docs = docs[:q.Limit]
	}

	out := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		cp := make(model.Document, len(doc))
		for k, v := range doc {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}
