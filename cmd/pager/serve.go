package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/syntrixbase/pager/internal/gateway"
	"github.com/syntrixbase/pager/internal/natsrpc"
	"github.com/syntrixbase/pager/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Serve the registered paginators over HTTP and NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

// serve runs until ctx is canceled or the HTTP server fails.
func serve(ctx context.Context, opts *rootOptions) error {
	a, err := bootstrap(ctx, opts, nil)
	if err != nil {
		return err
	}

	srv := server.New(a.cfg.Server, a.logger)
	gateway.NewServer(a.registry, a.cfg.Gateway,
		gateway.WithLogger(a.logger),
		gateway.WithMetricsHandler(promhttp.Handler()),
	).RegisterRoutes(srv.HTTPMux())

	var responder *natsrpc.Responder
	if a.cfg.NATS.Enabled {
		responder = natsrpc.NewResponder(a.registry, a.cfg.NATS,
			natsrpc.WithLogger(a.logger),
			natsrpc.WithMaxPageSize(a.cfg.Gateway.MaxPageSize),
			natsrpc.WithRequestTimeout(a.cfg.Server.RequestTimeout),
		)
		if err := responder.Start(ctx); err != nil {
			return errors.Join(err, a.close(context.Background()))
		}
	}

	runErr := srv.Start(ctx)
	a.logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	errs := []error{runErr, srv.Stop(shutdownCtx)}
	if responder != nil {
		errs = append(errs, responder.Stop())
	}
	errs = append(errs, a.close(shutdownCtx))
	return errors.Join(errs...)
}
