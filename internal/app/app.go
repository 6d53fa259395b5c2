// Package app wires configuration into the running FoodTruth components.
package app

import (
	"context"
	"fmt"
	"net/http"

	"foodtruth/internal/additive"
	"foodtruth/internal/cache"
	"foodtruth/internal/config"
	"foodtruth/internal/database"
	"foodtruth/internal/handler"
	"foodtruth/internal/history"
	"foodtruth/internal/preferences"
	"foodtruth/internal/repository"
	"foodtruth/internal/resolver"
	"foodtruth/internal/router"
	"foodtruth/internal/service"

	"github.com/rs/zerolog"
)

// defaultAdditivesObject is the S3 object name used when no additives path is configured.
const defaultAdditivesObject = "codex_additives.json"

// App holds the constructed components. Close releases the store.
type App struct {
	Store       repository.Store
	Additives   additive.KnowledgeBase
	Products    service.ProductService
	AdditiveSvc service.AdditiveService
	History     history.Log
	Preferences preferences.Store

	logger zerolog.Logger
}

// Options override components built from configuration. Zero fields are built normally.
type Options struct {
	Store    repository.Store
	Resolver resolver.Resolver
}

// New builds every component from cfg.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts Options) (*App, error) {
	store := opts.Store
	if store == nil {
		var err error
		store, err = database.OpenStore(ctx, cfg.Store, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
	}

	kb, err := loadKnowledgeBase(ctx, cfg.Additives, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	res := opts.Resolver
	if res == nil {
		res, err = newResolver(cfg.Resolver, logger)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	historyLog := history.New(store, logger, history.WithMaxEntries(cfg.History.MaxEntries))
	prefs := preferences.New(store, logger)
	productCache := cache.New(store, logger, cache.WithTTL(cfg.Cache.TTL))

	return &App{
		Store:       store,
		Additives:   kb,
		Products:    service.NewProductService(res, productCache, historyLog, prefs, kb, logger),
		AdditiveSvc: service.NewAdditiveService(kb, logger),
		History:     historyLog,
		Preferences: prefs,
		logger:      logger,
	}, nil
}

// Handler returns the HTTP API guarded by apiKey.
func (a *App) Handler(apiKey string) http.Handler {
	return router.New(router.Handlers{
		Product:     handler.NewProductHandler(a.Products, a.logger),
		Additive:    handler.NewAdditiveHandler(a.AdditiveSvc, a.logger),
		History:     handler.NewHistoryHandler(a.History, a.logger),
		Preferences: handler.NewPreferencesHandler(a.Preferences, a.logger),
	}, apiKey, a.logger)
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

func loadKnowledgeBase(ctx context.Context, cfg config.AdditivesConfig, logger zerolog.Logger) (additive.KnowledgeBase, error) {
	var s3Loader additive.Loader
	path := cfg.Path

	if cfg.S3.Enabled {
		l, err := additive.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
			if path == "" {
				path = defaultAdditivesObject
			}
		}
	} else {
		logger.Info().Msg("using local file system for the additive database (S3 disabled)")
	}

	loader := additive.NewFallbackLoader(s3Loader, additive.NewFileLoader(logger), cfg.S3.Prefix, logger)
	db, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load additive database: %w", err)
	}
	return additive.NewKnowledgeBase(db, logger), nil
}

func newResolver(cfg config.ResolverConfig, logger zerolog.Logger) (resolver.Resolver, error) {
	sources := resolver.DefaultSources()
	if cfg.SourcesFile != "" {
		loaded, err := resolver.LoadSources(cfg.SourcesFile)
		if err != nil {
			return nil, err
		}
		sources = loaded
		logger.Info().
			Str("file", cfg.SourcesFile).
			Int("sources", len(sources)).
			Msg("loaded product sources")
	}

	return resolver.New(resolver.Config{
		Sources:       sources,
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RatePerMinute: cfg.RatePerMinute,
	}, logger), nil
}
