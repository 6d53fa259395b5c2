package service

import (
	"context"

	"foodtruth/internal/additive"
	"foodtruth/internal/barcode"
	"foodtruth/internal/cache"
	"foodtruth/internal/dietary"
	"foodtruth/internal/history"
	"foodtruth/internal/metrics"
	"foodtruth/internal/model"
	"foodtruth/internal/preferences"
	"foodtruth/internal/resolver"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// productService implements ProductService.
type productService struct {
	resolver    resolver.Resolver
	cache       cache.ProductCache
	history     history.Log
	preferences preferences.Store
	additives   additive.KnowledgeBase
	group       singleflight.Group
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	res resolver.Resolver,
	productCache cache.ProductCache,
	historyLog history.Log,
	prefs preferences.Store,
	kb additive.KnowledgeBase,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		resolver:    res,
		cache:       productCache,
		history:     historyLog,
		preferences: prefs,
		additives:   kb,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Lookup resolves a barcode. Concurrent lookups of the same barcode share one resolution.
func (s *productService) Lookup(ctx context.Context, raw string) model.ScanResult {
	code, err := barcode.Validate(raw)
	if err != nil {
		metrics.ObserveLookup(metrics.OutcomeInvalid)
		s.logger.Debug().Str("input", raw).Msg("rejected invalid barcode")
		return model.ScanResult{
			Status:  model.ScanError,
			Barcode: raw,
			Reason:  "InvalidFormat",
			Message: model.ErrInvalidFormat.Message,
		}
	}

	// The shared resolution outlives any one caller's cancellation; per-attempt timeouts bound it.
	shared := context.WithoutCancel(ctx)
	v, _, joined := s.group.Do(code.Code, func() (interface{}, error) {
		return s.lookup(shared, code), nil
	})
	if joined {
		s.logger.Debug().Str("barcode", code.Code).Msg("joined in-flight lookup")
	}
	return v.(model.ScanResult)
}

func (s *productService) lookup(ctx context.Context, code barcode.Barcode) model.ScanResult {
	if product, ok := s.cache.Get(ctx, code.Code); ok {
		s.history.Add(ctx, code.Code, product)
		metrics.ObserveLookup(metrics.OutcomeCached)
		s.logger.Debug().Str("barcode", code.Code).Msg("served from cache")
		return model.ScanResult{
			Status:  model.ScanFound,
			Barcode: code.Code,
			Product: product,
			Source:  model.SourceCache,
		}
	}

	result := s.resolver.Resolve(ctx, code.Code)
	if !result.Found() {
		metrics.ObserveLookup(metrics.OutcomeNotFound)
		s.logger.Info().
			Str("barcode", code.Code).
			Strs("searched_sources", result.SearchedSources).
			Bool("all_sources_failed", result.AllSourcesFailed).
			Msg("product not found")
		return result
	}

	s.cache.Put(ctx, code.Code, result.Product)
	s.history.Add(ctx, code.Code, result.Product)

	metrics.ObserveLookup(metrics.OutcomeFound)
	s.logger.Info().
		Str("barcode", code.Code).
		Str("source", result.Source).
		Msg("product resolved")

	return result
}

// Get looks a barcode up and enriches the product.
func (s *productService) Get(ctx context.Context, raw string) (*model.EnrichedProduct, error) {
	result := s.Lookup(ctx, raw)

	switch result.Status {
	case model.ScanError:
		return nil, model.ErrInvalidFormat
	case model.ScanNotFound:
		return nil, model.ErrProductNotFound
	}
	return s.Enrich(ctx, result), nil
}

// Enrich computes the derived view of a found result using the current preferences.
func (s *productService) Enrich(ctx context.Context, result model.ScanResult) *model.EnrichedProduct {
	product := result.Product
	if product == nil {
		return nil
	}

	prefs := s.preferences.Get(ctx)

	return &model.EnrichedProduct{
		Product:   product,
		Source:    result.Source,
		SourceURL: result.SourceURL,
		Name:      product.DisplayName(),
		Grade:     product.Grade(),
		Additives: s.additives.ClassifyAll(product.AdditivesTags),
		Summary:   s.additives.Summarize(product.AdditivesTags),
		Warnings:  dietary.Evaluate(product, prefs),
		Analysis:  dietary.Analyze(product.IngredientsAnalysisTags),
	}
}

// ClearCache drops every cached product.
func (s *productService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
}
