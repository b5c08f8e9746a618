package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souq-be/internal/app"
	"souq-be/internal/config"
	"souq-be/internal/events"
	"souq-be/internal/httpapi"
	"souq-be/internal/logger"
	"souq-be/internal/middleware"
	"souq-be/internal/seed"
	"souq-be/internal/storage"
	"souq-be/internal/store"

	"go.uber.org/zap"
)

var (
	openStorageFunc = storage.Open
	startServerFunc = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupRouter wraps the API routes in the middleware chain, outermost first.
func setupRouter(cfg *config.Config, api http.Handler, limiter *middleware.RateLimiter) http.Handler {
	return middleware.Chain(api,
		middleware.Recover,
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORSFor(cfg.CORSOrigin),
		limiter.Middleware,
		middleware.UserID,
	)
}

func newServer(cfg *config.Config, s *store.Store, limiter *middleware.RateLimiter) *http.Server {
	api := httpapi.NewHandler(s, app.NewServices(s)).Routes()
	return &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(cfg, api, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func run() error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStorageFunc(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	s := store.New(backend, events.NewBus(), store.WithNamespace(cfg.StorageNamespace))

	if cfg.SeedFile != "" {
		fx, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		counts, err := seed.Apply(ctx, s, app.NewServices(s), fx)
		if err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		log.Info("seed applied", zap.String("file", cfg.SeedFile), zap.Any("counts", counts))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	go limiter.Run(ctx)

	srv := newServer(cfg, s, limiter)
	log.Info("server starting", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver))

	if err := startServerFunc(ctx, srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
