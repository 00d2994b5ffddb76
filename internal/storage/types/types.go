package types

import (
	"context"

	"github.com/syntrixbase/pager/pkg/model"
)

// FindQuery is one bounded, sorted scan over a collection.
type FindQuery struct {
	Filter model.Predicate
	Sort   []model.OrderBy
	Skip   int64
	// Limit caps the number of returned documents; zero means no limit.
	Limit int64
}

// Collection is the read boundary the pager runs against.
type Collection interface {
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, filter model.Predicate) (int64, error)

	// Find returns the documents matching q.Filter ordered by q.Sort,
	// after skipping q.Skip and capped at q.Limit.
	Find(ctx context.Context, q FindQuery) ([]model.Document, error)
}

// DocumentStore gives access to named collections.
type DocumentStore interface {
	// Collection returns the named collection. Collections exist implicitly.
	Collection(name string) Collection

	// Insert stores doc and returns its id. A missing id is generated.
	Insert(ctx context.Context, collection string, doc model.Document) (string, error)

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}
