package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/storage/internal/memory"
	"github.com/syntrixbase/pager/internal/storage/internal/mongo"
	"github.com/syntrixbase/pager/internal/storage/types"
)

// Dependency injection for testing
var newMongoStore = func(ctx context.Context, cfg config.MongoConfig) (types.DocumentStore, error) {
	return mongo.Connect(ctx, cfg.URI, cfg.DatabaseName, cfg.ObjectIDs)
}

// NewDocumentStore builds the configured backend. The memory backend is
// seeded from the fixtures file when one is configured.
func NewDocumentStore(ctx context.Context, cfg config.StorageConfig) (types.DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		store, err := newMongoStore(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo backend: %w", err)
		}
		slog.Info("Connected to MongoDB", "database", cfg.Mongo.DatabaseName)
		return store, nil
	case config.BackendMemory:
		store, err := memory.NewDocumentStore()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
		}
		if cfg.Memory.FixturesPath != "" {
			n, err := LoadFixtures(ctx, store, cfg.Memory.FixturesPath)
			if err != nil {
				return nil, err
			}
			slog.Info("Loaded fixtures", "file", cfg.Memory.FixturesPath, "documents", n)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Backend)
	}
}
