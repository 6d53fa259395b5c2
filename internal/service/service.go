package service

import (
	"context"

	"foodtruth/internal/model"
)

// ProductService defines the barcode lookup use case.
type ProductService interface {
	// Lookup validates raw, then serves the product from the cache or the
	// remote sources. A found product is cached before it is added to the history.
	Lookup(ctx context.Context, raw string) model.ScanResult

	// Get looks raw up and enriches the product. It returns
	// model.ErrInvalidFormat or model.ErrProductNotFound when there is no product.
	Get(ctx context.Context, raw string) (*model.EnrichedProduct, error)

	// Enrich derives additive classification, dietary warnings and
	// ingredient analysis for a found result. The product is not modified.
	Enrich(ctx context.Context, result model.ScanResult) *model.EnrichedProduct

	// ClearCache drops every cached product.
	ClearCache(ctx context.Context)
}

// AdditiveService defines additive lookups.
type AdditiveService interface {
	// Get returns the record for a raw additive code, or model.ErrAdditiveNotFound.
	Get(ctx context.Context, code string) (*model.AdditiveRecord, error)

	// Summarize aggregates the risk of a list of additive codes.
	Summarize(ctx context.Context, codes []string) model.AdditiveSummary
}
