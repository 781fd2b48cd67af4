// Package main runs catalogd, the HTTP server behind the product store:
// an in-memory implementation of the remote product service contract.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mlevkov/prodsync/internal/bootstrap"
	"github.com/mlevkov/prodsync/internal/catalog"
	"github.com/mlevkov/prodsync/internal/config"
	"github.com/mlevkov/prodsync/internal/config/configloader"
	"github.com/mlevkov/prodsync/internal/server"
	"github.com/mlevkov/prodsync/internal/transport/rest"
)

const appName = "catalogd"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads configuration and drives the HTTP server lifecycle.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.ServerConfig](appName, defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	httpServer := setupServer(logger, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupServer wires the catalog service, REST handler and HTTP server.
func setupServer(logger *slog.Logger, cfg *config.ServerConfig) *http.Server {
	catalogStore := catalog.NewSeededStore(config.Products(cfg.Seed))
	service := catalog.NewService(catalogStore)

	mux := server.NewChiRouter(logger)
	handler := rest.NewHandler(service, logger)
	handler.RegisterRoutes(mux)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, mux)
}

// defaults lets catalogd start with no config file present.
func defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "2s",
		"log.level":                 "info",
		"shutdown.timeout":          "10s",
	}
}
