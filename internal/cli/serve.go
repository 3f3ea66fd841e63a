package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/internal/config"
	httpAdapter "github.com/aretw0/gestalt/pkg/adapters/http"
	"github.com/aretw0/gestalt/pkg/adapters/redis"
	"github.com/aretw0/gestalt/pkg/bindings"
	"github.com/aretw0/gestalt/pkg/observability"
	"github.com/aretw0/gestalt/pkg/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures Serve.
type ServeOptions struct {
	Config config.Server
	Logger *slog.Logger

	// Listener overrides Config.Addr when set.
	Listener net.Listener
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully:
// the listener stops, the system is released and the relay drains what is left.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.New(reg)

	policy, err := gestalt.ParseOverflowPolicy(cfg.EventOverflow)
	if err != nil {
		return err
	}
	sys := gestalt.New(
		gestalt.WithLogger(logger),
		gestalt.WithLifecycleHooks(metrics.Hooks()),
		gestalt.WithEventBuffer(cfg.EventBuffer, policy),
	)

	if cfg.BindingsPath != "" {
		list, err := bindings.Load(cfg.BindingsPath)
		if err != nil {
			sys.Release()
			return err
		}
		if err := sys.RegisterAll(list...); err != nil {
			sys.Release()
			return err
		}
		logger.Info("bindings loaded", "path", cfg.BindingsPath, "count", len(list))
	}

	streams := httpAdapter.NewStreamManager(logger)
	relayOpts := []relay.Option{
		relay.WithLogger(logger),
		relay.WithPublisher(streams),
		relay.WithPublishTimeout(time.Second),
	}
	if cfg.RedisAddr != "" {
		pub := redis.New(cfg.RedisAddr,
			redis.WithStream(cfg.RedisStream),
			redis.WithMaxLen(cfg.RedisMaxLen),
			redis.WithApproxTrim(),
		)
		defer pub.Close()
		if err := pub.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, publishes will fail until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		relayOpts = append(relayOpts, relay.WithPublisher(pub))
		logger.Info("publishing events to redis", "addr", cfg.RedisAddr, "stream", pub.Stream())
	}
	rl := relay.New(sys.Events(), relayOpts...)
	relayDone := make(chan error, 1)
	go func() {
		// The relay outlives ctx so it can drain after Release closes the stream.
		relayDone <- rl.Run(context.Background())
	}()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpAdapter.NewHandler(sys,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		),
		ReadHeaderTimeout: 10 * time.Second,
		// Open SSE streams end with ctx.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		if opts.Listener != nil {
			logger.Info("starting gestalt server", "addr", opts.Listener.Addr().String())
			serverErrors <- srv.Serve(opts.Listener)
			return
		}
		logger.Info("starting gestalt server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			_ = srv.Close()
		}
	}

	sys.Release()
	select {
	case <-relayDone:
	case <-time.After(shutdownTimeout):
		logger.Warn("relay did not drain in time")
	}
	logger.Info("gestalt server stopped",
		"published", rl.Published(),
		"failed", rl.Failed(),
		"dropped", sys.Dropped(),
	)
	return runErr
}
