package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/internal/cursor"
	"github.com/syntrixbase/pager/internal/logging"
	"github.com/syntrixbase/pager/internal/pager"
	"github.com/syntrixbase/pager/internal/storage"
	"github.com/syntrixbase/pager/internal/storage/types"
)

// app holds what every command needs: configuration, the store and the
// registry of paginators built on top of it.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	settings *config.Settings
	store    types.DocumentStore
	registry *pager.Registry
}

// bootstrap loads configuration from the config directory, lets adjust
// tweak it, then brings up logging, the store and the registry in that order.
// Pager settings are layered as defaults, then file and environment, then
// command-line flags, and freeze once the codec is built from them.
func bootstrap(ctx context.Context, opts *rootOptions, adjust func(*config.Config)) (*app, error) {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, err
	}
	logger := slog.Default()

	settings := config.NewSettings(config.DefaultPagerConfig())
	for _, layer := range []config.PagerConfig{cfg.Pager, opts.pagerOverrides()} {
		if err := settings.Update(layer); err != nil {
			logging.Shutdown()
			return nil, err
		}
	}
	current := settings.Get()
	if current.UsesPlaceholderSecret() {
		logger.Warn("Cursor secret is the built-in placeholder; set pager.cursor_secret or PAGER_CURSOR_SECRET")
	}

	engine := pager.NewEngine(cursor.NewCodec(current.CursorSecret), logger.With("component", "pager"))

	store, err := storage.NewDocumentStore(ctx, cfg.Storage)
	if err != nil {
		logging.Shutdown()
		return nil, err
	}

	registry, err := pager.NewRegistryFromConfig(engine, settings, store, cfg.Collections)
	if err != nil {
		store.Close(ctx)
		logging.Shutdown()
		return nil, fmt.Errorf("failed to register collections: %w", err)
	}

	logger.Info("Pager ready",
		"backend", cfg.Storage.Backend,
		"method", registry.MethodName(),
		"collections", registry.Collections(),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		settings: settings,
		store:    store,
		registry: registry,
	}, nil
}

func (a *app) close(ctx context.Context) error {
	return errors.Join(a.store.Close(ctx), logging.Shutdown())
}
