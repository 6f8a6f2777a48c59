// Package main is the entry point for the Financial Management System API server.
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

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/HACO8888/Financial-Management-System/config"
	"github.com/HACO8888/Financial-Management-System/internal/infra/db"
	"github.com/HACO8888/Financial-Management-System/internal/infra/dependency"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting Financial Management System API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	injector, err := dependency.NewInjector(ctx, cfg, database.DB(), dependency.Externals{})
	if err != nil {
		return fmt.Errorf("failed to wire dependencies: %w", err)
	}
	defer func() {
		if err := injector.Close(); err != nil {
			slog.Error("Failed to close external connections", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if cfg.Email.WorkerEnabled {
		g.Go(func() error {
			injector.EmailWorker.Start(gctx)
			return nil
		})
	}

	if injector.Scheduler != nil {
		if err := injector.Scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if injector.Scheduler != nil {
			if err := injector.Scheduler.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
			}
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server forced to shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
