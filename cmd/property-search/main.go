package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/property-search/internal/api/http"
	"github.com/i474232898/property-search/internal/config"
	"github.com/i474232898/property-search/internal/logging"
	"github.com/i474232898/property-search/internal/property"
	"github.com/i474232898/property-search/internal/property/remote"
	"github.com/i474232898/property-search/internal/scheduler"
	"github.com/i474232898/property-search/internal/search"
	"github.com/i474232898/property-search/internal/store"
	"github.com/i474232898/property-search/internal/views"
)

const appName = "property-search"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg, appName))

	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"port", cfg.Port,
		"apiBaseURL", cfg.APIBaseURL,
		"cacheTTL", cfg.CacheTTL,
		"cacheMaxEntries", cfg.CacheMaxEntries,
		"sessionTTL", cfg.SessionTTL,
		"maxRetries", cfg.MaxRetries,
		"autoApply", cfg.AutoApply,
	)

	if err := views.LoadTemplates(); err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound get-properties calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	cache := store.NewResultCache(cfg.CacheMaxEntries, cfg.CacheTTL)
	sessions := store.NewSessionStore(cfg.SessionTTL)

	client := remote.NewClient(httpClient, cfg.APIBaseURL, cfg.MaxRetries)
	service := property.NewService(client, cache, cfg.FetchTimeout)

	// Background queries are cancelled on shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	searcher := search.NewSearcher(ctx, service, cfg.FetchTimeout, cfg.AutoApply)

	sched := scheduler.New(cfg.SweepInterval, cache, sessions)
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
		Immutable:             true,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, sessions, searcher, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()
	slog.Info("listening", "port", cfg.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	searcher.Wait()
}
