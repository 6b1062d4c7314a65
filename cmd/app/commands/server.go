package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/notevault/internal/app"
	"github.com/allisson/notevault/internal/config"
)

// shutdownTarget is the subset of server behavior the run loop needs.
type shutdownTarget interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// shutdownServers stops the given servers concurrently within the timeout.
func shutdownServers(timeout time.Duration, servers ...shutdownTarget) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var g errgroup.Group
	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// RunServer starts the HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container, and starts the Gin HTTP
// server plus the Prometheus metrics server when enabled. Blocks until
// receiving SIGINT/SIGTERM or encountering a fatal error.
func RunServer(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []shutdownTarget{server}
	if cfg.MetricsEnabled {
		metricsServer, err := container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		servers = append(servers, metricsServer)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start servers in goroutines
	serverErr := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			if err := srv.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("server error: %w", err)
			}
		}()
	}

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return shutdownServers(cfg.DBConnMaxLifetime, servers...)
	case err := <-serverErr:
		// Attempt graceful shutdown if one server fails
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		if shutErr := shutdownServers(cfg.DBConnMaxLifetime, servers...); shutErr != nil {
			return errors.Join(err, shutErr)
		}
		return err
	}
}
