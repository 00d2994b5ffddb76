package pager

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/syntrixbase/pager/internal/storage/types"
	"github.com/syntrixbase/pager/pkg/model"
)

var (
	// requestsTotal counts paginate calls.
	// Labels: collection, outcome
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pager_requests_total",
			Help: "Total paginate calls by outcome.",
		},
		[]string{"collection", "outcome"},
	)

	storeDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pager_store_duration_seconds",
			Help:    "Store round trip latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	pageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pager_page_size",
			Help:    "Number of edges returned per page.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case model.IsCanceled(err):
		return "canceled"
	case errors.Is(err, model.ErrConflictingArguments):
		return "conflicting_arguments"
	case errors.Is(err, model.ErrInvalidCursor):
		return "invalid_cursor"
	case errors.Is(err, model.ErrInvalidSort):
		return "invalid_sort"
	default:
		return "error"
	}
}

func recordRequest(collection string, conn *model.Connection, err error) {
	requestsTotal.WithLabelValues(collection, outcome(err)).Inc()
	if err == nil && conn != nil {
		pageSize.Observe(float64(len(conn.Edges)))
	}
}

// instrumentedStore times every store round trip.
type instrumentedStore struct {
	types.Collection
}

func (s instrumentedStore) Count(ctx context.Context, filter model.Predicate) (int64, error) {
	defer observeStore("count", time.Now())
	return s.Collection.Count(ctx, filter)
}

func (s instrumentedStore) Find(ctx context.Context, q types.FindQuery) ([]model.Document, error) {
	defer observeStore("find", time.Now())
	return s.Collection.Find(ctx, q)
}

func observeStore(operation string, start time.Time) {
	storeDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
