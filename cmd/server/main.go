package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"addressfinder/internal/journey"
	journeyhandler "addressfinder/internal/journey/handler"
	"addressfinder/internal/journey/store"
	"addressfinder/internal/jwtauth"
	"addressfinder/internal/lookup"
	"addressfinder/internal/platform/config"
	"addressfinder/internal/platform/httpserver"
	"addressfinder/internal/platform/logger"
	"addressfinder/internal/platform/metrics"
	"addressfinder/internal/platform/middleware"
	"addressfinder/internal/platform/postgres"
	platformredis "addressfinder/internal/platform/redis"
	"addressfinder/pkg/platform/audit"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	log := logger.New()

	m := metrics.New()

	provider := lookup.NewHTTPProvider(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	matcher := lookup.NewMatcher(provider, log, m)

	journeyStore, health, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := journey.NewService(journeyStore, matcher, log, m, audit.NewSlogSink(log))
	tokens := jwtauth.NewService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	handler := journeyhandler.New(svc, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestMetadata)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(tokens, log))
		handler.RegisterAPI(r)
	})
	handler.RegisterSteps(router)

	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(health, provider.Health))

	srv := httpserver.New(cfg.Server.Addr, router)
	log.Info("starting addressfinder", "addr", cfg.Server.Addr, "store", cfg.Store.Backend)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("addressfinder stopped")
	return nil
}

// buildStore selects the keystore backend. The memory backend exists for
// local development and single-instance deployments only.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (journey.Store, func(context.Context) error, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewRedisStore(client.Client, cfg.Store.TTL), client.Health, func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		if _, err := pool.Exec(ctx, store.Schema); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("ensure journey table: %w", err)
		}
		return store.NewPostgresStore(pool), pool.Ping, pool.Close, nil

	case "memory":
		log.Warn("using in-memory journey store; records do not survive restarts")
		return store.NewInMemoryStore(), func(context.Context) error { return nil }, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// healthz reports liveness plus keystore and provider reachability.
func healthz(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintln(w, "dependency unavailable")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}
}
