package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubegate/internal/api/handler"
	"github.com/hszk-dev/tubegate/internal/api/middleware"
	"github.com/hszk-dev/tubegate/internal/config"
	"github.com/hszk-dev/tubegate/internal/extractor"
	"github.com/hszk-dev/tubegate/internal/infrastructure/cache"
	"github.com/hszk-dev/tubegate/internal/infrastructure/ratelimit"
	"github.com/hszk-dev/tubegate/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	metadataCache, err := buildCache(cfg.Cache)
	if err != nil {
		return err
	}

	ytdlp := extractor.NewYTDLP(extractor.YTDLPConfig{
		Binary:  cfg.Extractor.Binary,
		Timeout: cfg.Extractor.Timeout,
	})

	svc := usecase.NewCachedVideoService(
		usecase.NewVideoService(ytdlp),
		metadataCache,
		usecase.CachedVideoServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	limiter := ratelimit.NewFixedWindow(cfg.RateLimit.Limit, cfg.RateLimit.Window)

	r := setupRouter(logger, svc, limiter, cfg.API)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("cache_backend", cfg.Cache.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func buildCache(cfg config.CacheConfig) (cache.MetadataCache, error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return cache.NewRedisCache(client), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func setupRouter(logger *slog.Logger, svc usecase.VideoService, limiter middleware.Limiter, apiCfg config.APIConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	h := handler.NewYouTubeHandler(svc, apiCfg.Credit, apiCfg.PlaylistLimit)

	r.Route("/api/youtube", func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Get("/", h.Resolve)
		r.Get("/download", h.Download)
		r.Get("/playlist", h.Playlist)
	})

	return r
}
