package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"foodtruth/internal/cache"
	"foodtruth/internal/config"
	"foodtruth/internal/database"
	"foodtruth/internal/history"
	"foodtruth/internal/preferences"

	"github.com/rs/zerolog"
)

// check_store opens the store configured in the environment and reports
// how many keys each namespace holds.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.OpenStore(ctx, cfg.Store, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s store: %v\n", cfg.Store.Backend, err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("Successfully opened %s store\n", cfg.Store.Backend)

	fmt.Println("\nNamespaces:")
	for _, prefix := range []string{cache.KeyPrefix, history.Key, preferences.Key} {
		keys, err := store.Keys(ctx, prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Listing %s failed: %v\n", prefix, err)
			os.Exit(1)
		}
		fmt.Printf("  - %-24s %d\n", prefix, len(keys))
	}
}
