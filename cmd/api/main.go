package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trustcms/internal/config"
	httpx "trustcms/internal/http"
	"trustcms/internal/logging"
	"trustcms/internal/metrics"
	"trustcms/internal/services/content"
	"trustcms/internal/store/cache"
	"trustcms/internal/store/memory"
	"trustcms/internal/store/postgres"
	"trustcms/internal/store/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store
	var repo repositories.ContentRepository
	switch cfg.DB.Driver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; content is lost on restart")
		repo = memory.NewContentRepository()
	default:
		pool := postgres.MustOpen(ctx, cfg.DB.DSN, cfg.DB.ConnectTimeout)
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		repo = postgres.NewContentRepository(pool)
	}

	// Optional list cache
	var listCache repositories.ListCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable; list cache will retry per request")
		}
		listCache = cache.NewListCache(rdb, cfg.Redis.TTL)
	}

	m := metrics.New()
	svc := content.NewService(repo, listCache, m)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:         cfg,
		ContentService: svc,
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("trustcms API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
