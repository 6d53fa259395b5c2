package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"foodtruth/internal/app"
	"foodtruth/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(openFromEnv)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foodtruth: %v\n", err)
		os.Exit(1)
	}
}

// openFromEnv loads configuration from the environment, applies the
// --store override and builds the application.
func openFromEnv(ctx context.Context, backend string) (*app.App, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if backend != "" {
		cfg.Store.Backend = backend
		if err := cfg.Store.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger := config.NewLogger(cfg.Logger)
	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}
