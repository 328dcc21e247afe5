package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promptops/model-engine/internal/adapters/cache/memory"
	rediscache "github.com/promptops/model-engine/internal/adapters/cache/redis"
	"github.com/promptops/model-engine/internal/analytics"
	"github.com/promptops/model-engine/internal/config"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/promptops/model-engine/internal/core/services"
	"github.com/promptops/model-engine/internal/platform/logger"
	"github.com/promptops/model-engine/internal/platform/otel"
	"github.com/promptops/model-engine/internal/server"
	"github.com/promptops/model-engine/internal/server/validator"
	"github.com/promptops/model-engine/internal/store"
	"github.com/promptops/model-engine/internal/store/sqlite"
	"github.com/promptops/model-engine/internal/version"
	"go.uber.org/zap"

	// Import probes to trigger init() registration
	_ "github.com/promptops/model-engine/internal/probes/anthropic"
	_ "github.com/promptops/model-engine/internal/probes/azure"
	_ "github.com/promptops/model-engine/internal/probes/google"
	_ "github.com/promptops/model-engine/internal/probes/local"
	_ "github.com/promptops/model-engine/internal/probes/openai"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	validator.InitValidator()

	shutdownTracer, err := otel.InitTracer("model-engine", log, os.Stdout)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	go version.CheckForUpdates(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable usage journal (optional)
	var repo store.Repository
	var journal analytics.Ingestor
	if cfg.Store.Enabled {
		repo, err = sqlite.NewSQLiteStorage(cfg.Store.DSN)
		if err != nil {
			log.Fatal("Failed to open usage store", zap.Error(err))
		}
		journal = analytics.NewIngestor(log, repo)
		journal.Start(ctx)
	}

	// Cache: Redis when configured, in-memory otherwise
	var cache ports.CacheService
	if cfg.Redis.Enabled {
		cache, err = rediscache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		log.Info("Using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		cache = memory.NewMemoryCache()
	}

	manager := services.NewManager(log, cache, journal)

	// Seed registry from config
	if err := manager.ImportConfiguration(cfg.Snapshot()); err != nil {
		log.Fatal("Failed to seed registry from config", zap.Error(err))
	}

	// Overlay a saved snapshot when one exists
	if path := cfg.Engine.SnapshotPath; path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := manager.LoadSnapshot(path); err != nil {
				log.Fatal("Failed to load snapshot", zap.String("path", path), zap.Error(err))
			}
			log.Info("Loaded configuration snapshot", zap.String("path", path))
		}
	}

	manager.Initialize(ctx)
	manager.StartHealthLoop(ctx)

	srv := server.New(cfg, log, manager, repo)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("Starting model engine", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if path := cfg.Engine.SnapshotPath; path != "" {
		if err := manager.SaveSnapshot(path); err != nil {
			log.Error("Failed to save snapshot", zap.String("path", path), zap.Error(err))
		}
	}

	manager.Shutdown()
	if repo != nil {
		_ = repo.Close()
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}
}
