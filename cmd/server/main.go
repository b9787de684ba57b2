package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whatsuprobl9x-arch/novaurl/internal/config"
	"github.com/whatsuprobl9x-arch/novaurl/internal/handlers"
	"github.com/whatsuprobl9x-arch/novaurl/internal/repository"
	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Schema Setup: versioned migrations on postgres, AutoMigrate on sqlite
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}

	// 5. Rate Limiter: Redis-backed when configured, in-process otherwise
	var rateLimiter services.RateLimiter
	ipLimiter := services.NewIPRateLimiter(5, 10, logger)
	ipLimiter.StartCleanup(10 * time.Minute)
	rateLimiter = ipLimiter

	if cfg.RedisURL != "" {
		rdb, err := repository.InitRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn("Failed to connect to Redis, using in-process rate limiter", "error", err)
		} else {
			logger.Info("Using Redis-backed rate limiter")
			rateLimiter = services.NewRedisRateLimiter(rdb, 300, time.Minute, logger)
		}
	}

	// 6. Initialize Services
	notifier := services.NewNotifier(cfg, logger)
	geoService := services.NewGeoService(cfg, logger)
	linkService := services.NewLinkService(db, notifier, logger)
	visitService := services.NewVisitService(db, geoService, notifier, logger)

	// 7. Initialize Handler
	h := handlers.NewHandler(cfg, logger, linkService, visitService)

	// 8. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter)

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "domain", cfg.PublicDomain)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	// Graceful shutdown timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
	return nil
}
