// Package main runs the prodsync terminal client: a product store mirrored
// from the remote catalog, rendered by a Bubble Tea UI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mlevkov/prodsync/internal/bootstrap"
	"github.com/mlevkov/prodsync/internal/config"
	"github.com/mlevkov/prodsync/internal/config/configloader"
	"github.com/mlevkov/prodsync/internal/remote"
	"github.com/mlevkov/prodsync/internal/store"
	"github.com/mlevkov/prodsync/internal/tui"
)

const appName = "prodsync"

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.ClientConfig](appName, defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logger, closeLog, err := bootstrap.NewFileLogger(appName+".log", cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := remote.NewClient(cfg.Remote.BaseURL, remote.WithTimeout(cfg.Remote.Timeout))
	if err != nil {
		return fmt.Errorf("failed to create remote client: %w", err)
	}

	st := store.New(client, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(tui.New(gCtx, st), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// defaults point the client at a local catalogd.
func defaults() map[string]any {
	return map[string]any{
		"remote.baseUrl": "http://localhost:8080",
		"remote.timeout": "10s",
		"log.level":      "info",
	}
}
