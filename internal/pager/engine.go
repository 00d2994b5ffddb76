// Package pager implements relay-style cursor pagination on top of a
// document store that can count and run bounded, sorted scans.
package pager

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/syntrixbase/pager/internal/cursor"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
)

// DefaultLimit caps a page when neither first nor last is given.
const DefaultLimit = 1000

// Store is the read boundary a page is computed against.
type Store interface {
	Count(ctx context.Context, filter model.Predicate) (int64, error)
	Find(ctx context.Context, q types.FindQuery) ([]model.Document, error)
}

// Engine resolves page requests into store queries and shapes the results.
// It is stateless and safe for concurrent use.
type Engine struct {
	codec  *cursor.Codec
	logger *slog.Logger
}

// NewEngine creates an engine that signs and verifies cursors with codec.
func NewEngine(codec *cursor.Codec, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		codec:  codec,
		logger: logger.With("component", "pager"),
	}
}

// plan is the store-level shape of one page request.
type plan struct {
	limit     int64
	hasOffset bool
	skip      int64
	forward   bool
}

// positive reports whether a first/last argument is in effect.
// A zero or negative value counts as absent.
func positive(n *int) bool {
	return n != nil && *n > 0
}

func makePlan(req model.PageRequest, total int64, hasAfter, hasBefore bool) plan {
	p := plan{limit: DefaultLimit}
	switch {
	case positive(req.First):
		p.limit = int64(*req.First)
	case positive(req.Last):
		p.limit = int64(*req.Last)
	}

	// Two cursors pin both ends of the window, so no extra row is fetched.
	p.hasOffset = !(hasAfter && hasBefore)

	backward := positive(req.Last) || hasBefore
	p.forward = positive(req.First) || hasAfter || !backward

	if positive(req.Last) && !hasAfter {
		skip := total - int64(*req.Last)
		if p.hasOffset {
			skip--
		}
		if hasBefore {
			skip--
		}
		if skip > 0 {
			p.skip = skip
		}
	}
	return p
}

func (p plan) fetch() int64 {
	if p.hasOffset {
		return p.limit + 1
	}
	return p.limit
}

// resolveSort returns the store ordering: the requested field then id in the
// same direction, or id ascending when no sort is requested.
func resolveSort(s *model.Sort) []model.OrderBy {
	if s == nil || s.By == "" {
		return []model.OrderBy{{Field: model.IDField, Direction: model.SortAsc}}
	}
	dir := s.Direction()
	if s.By == model.IDField {
		return []model.OrderBy{{Field: model.IDField, Direction: dir}}
	}
	return []model.OrderBy{
		{Field: s.By, Direction: dir},
		{Field: model.IDField, Direction: dir},
	}
}

// boundary selects the rows strictly beyond the cursor position in the
// direction given by op.
func boundary(c *cursor.Payload, op model.FilterOp) model.Predicate {
	if c.Sort == nil {
		return model.Where(model.IDField, op, c.ID)
	}
	return model.Or(
		model.Where(c.Sort.Field, op, c.Sort.Value),
		model.And(
			model.Eq(c.Sort.Field, c.Sort.Value),
			model.Where(model.IDField, op, c.ID),
		),
	)
}

// filterPredicate builds the count scope: base, search and request filters.
func filterPredicate(base model.Predicate, req model.PageRequest, opts Options) model.Predicate {
	preds := []model.Predicate{base}

	if req.Search != "" {
		matches := make([]model.Predicate, 0, len(opts.SearchFields))
		for _, field := range opts.SearchFields {
			matches = append(matches, model.Match(field, req.Search))
		}
		preds = append(preds, model.Or(matches...))
	}

	for _, name := range sortedKeys(req.Filters) {
		field, ok := opts.FilterFields[name]
		if !ok {
			continue
		}
		preds = append(preds, field.predicate(name, req.Filters[name]))
	}

	return model.And(preds...)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Paginate runs one page request against store.
//
// It fails with model.ErrConflictingArguments when both first and last are
// set and with model.ErrInvalidCursor when after or before does not verify,
// in both cases before the store is touched. Store errors are returned as is.
func (e *Engine) Paginate(ctx context.Context, store Store, base model.Predicate, req model.PageRequest, opts Options) (*model.Connection, error) {
	if req.First != nil && req.Last != nil {
		return nil, model.ErrConflictingArguments
	}

	var after, before *cursor.Payload
	var err error
	if req.After != "" {
		if after, err = e.codec.Decode(req.After); err != nil {
			return nil, err
		}
	}
	if req.Before != "" {
		if before, err = e.codec.Decode(req.Before); err != nil {
			return nil, err
		}
	}

	filter := filterPredicate(base, req, opts)
	total, err := store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	desc := req.Sort != nil && req.Sort.By != "" && req.Sort.Direction() == model.SortDesc
	afterOp, beforeOp := model.OpGt, model.OpLt
	if desc {
		afterOp, beforeOp = model.OpLt, model.OpGt
	}

	window := []model.Predicate{filter}
	hasPrev, hasNext := false, false
	if after != nil {
		window = append(window, boundary(after, afterOp))
		hasPrev = true
	}
	if before != nil {
		window = append(window, boundary(before, beforeOp))
		hasNext = true
	}

	p := makePlan(req, total, after != nil, before != nil)
	e.logger.Debug("Resolved page plan",
		"total", total,
		"limit", p.limit,
		"skip", p.skip,
		"fetch", p.fetch(),
		"forward", p.forward,
	)

	rows, err := store.Find(ctx, types.FindQuery{
		Filter: model.And(window...),
		Sort:   resolveSort(req.Sort),
		Skip:   p.skip,
		Limit:  p.fetch(),
	})
	if err != nil {
		return nil, err
	}

	if p.hasOffset && int64(len(rows)) > p.limit {
		if p.forward {
			hasNext = true
			rows = rows[:p.limit]
		} else {
			hasPrev = true
			rows = rows[int64(len(rows))-p.limit:]
		}
	}

	edges := make([]model.Edge, 0, len(rows))
	for _, row := range rows {
		token, err := e.encode(row, req.Sort)
		if err != nil {
			return nil, err
		}
		edges = append(edges, model.Edge{Node: row, Cursor: token})
	}

	info := model.PageInfo{
		HasNextPage:     hasNext,
		HasPreviousPage: hasPrev,
	}
	if len(edges) > 0 {
		start, end := edges[0].Cursor, edges[len(edges)-1].Cursor
		info.StartCursor, info.EndCursor = &start, &end
	}

	return &model.Connection{
		TotalCount: total,
		Edges:      edges,
		PageInfo:   info,
	}, nil
}

func (e *Engine) encode(row model.Document, s *model.Sort) (string, error) {
	var sc *cursor.SortContext
	if s != nil && s.By != "" {
		value, _ := row.Lookup(s.By)
		sc = &cursor.SortContext{Field: s.By, Value: value}
	}
	token, err := e.codec.Encode(row[model.IDField], sc)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return token, nil
}
