package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/app"
	"github.com/dangarahotel/frontdesk-backend/internal/config"
	"github.com/dangarahotel/frontdesk-backend/internal/db"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/cache"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/logger"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DBDSN); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis is optional; without it the report caches simply miss.
	var c *cache.Cache
	if cfg.RedisAddr != "" {
		c, err = cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer c.Close()
	} else {
		zl.Info("REDIS_ADDR not set, running without cache")
	}

	files, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		zl.Fatal("failed to init file storage", zap.Error(err))
	}

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOriginList(),
		DBPool:       pool,
		Cache:        c,
		Storage:      files,
		Logger:       zl,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
	})

	// Make sure a fresh deployment has a way in.
	if err := container.UserService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zl.Fatal("failed to ensure admin account", zap.Error(err))
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
