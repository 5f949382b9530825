package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/registra-api/registra/internal/config"
	"github.com/registra-api/registra/internal/infra"
	"github.com/registra-api/registra/internal/logging"
	"github.com/registra-api/registra/internal/migrations"
	"github.com/registra-api/registra/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	pools := infra.NewManager(cfg.DB, logger, migrations.Apply)
	defer pools.Close()

	// Warm up the pool and ensure the schema. In production a database
	// outage must not keep the listener from starting; health checks stay
	// green and requests keep retrying the connection lazily.
	if _, err := pools.Acquire(ctx); err != nil {
		if cfg.IsProduction() {
			logger.Error("database warm-up failed, starting listener anyway", "error", err)
		} else {
			logger.Error("database warm-up failed", "error", err)
			os.Exit(1)
		}
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("connect redis, rate limiting disabled", "error", err)
			cache = nil
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("close redis", "error", err)
				}
			}()
		}
	}

	srv, err := server.New(cfg, pools, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
