// Package cache keeps resolved products in the local store for a limited time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodtruth/internal/metrics"
	"foodtruth/internal/model"
	"foodtruth/internal/repository"

	"github.com/rs/zerolog"
)

// KeyPrefix namespaces product entries in the shared store.
const KeyPrefix = "product_cache_"

// DefaultTTL is how long a cached product stays valid.
const DefaultTTL = 24 * time.Hour

// ProductCache stores products by barcode. Storage faults never reach the
// caller: reads degrade to a miss and writes to a no-op.
type ProductCache interface {
	// Get returns the cached product if present and younger than the TTL.
	// Expired entries are deleted.
	Get(ctx context.Context, barcode string) (*model.Product, bool)

	// Put stores product with the current time.
	Put(ctx context.Context, barcode string, product *model.Product)

	// Clear removes every cached product and nothing else.
	Clear(ctx context.Context)
}

// entry is the stored form of a cached product.
type entry struct {
	Product   *model.Product `json:"product"`
	Timestamp int64          `json:"timestamp"` // Unix milliseconds
}

// Option configures a ProductCache.
type Option func(*productCache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *productCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *productCache) {
		c.now = now
	}
}

type productCache struct {
	store  repository.Store
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a product cache over store.
func New(store repository.Store, logger zerolog.Logger, opts ...Option) ProductCache {
	c := &productCache{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger.With().Str("component", "product-cache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the store key for barcode.
func Key(barcode string) string {
	return KeyPrefix + barcode
}

func (c *productCache) Get(ctx context.Context, barcode string) (*model.Product, bool) {
	product, ok := c.get(ctx, barcode)
	metrics.ObserveCache(ok)
	return product, ok
}

func (c *productCache) get(ctx context.Context, barcode string) (*model.Product, bool) {
	key := Key(barcode)

	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("barcode", barcode).Msg("cache read failed")
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.Product == nil {
		c.logger.Warn().Err(err).Str("barcode", barcode).Msg("unreadable cache entry")
		return nil, false
	}

	age := c.now().Sub(time.UnixMilli(e.Timestamp))
	if age >= c.ttl {
		c.logger.Debug().Str("barcode", barcode).Dur("age", age).Msg("cache entry expired")
		c.delete(ctx, key)
		return nil, false
	}

	return e.Product, true
}

func (c *productCache) Put(ctx context.Context, barcode string, product *model.Product) {
	if product == nil {
		return
	}

	raw, err := json.Marshal(entry{Product: product, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn().Err(err).Str("barcode", barcode).Msg("failed to encode cache entry")
		return
	}

	if err := c.store.Set(ctx, Key(barcode), raw); err != nil {
		c.logger.Warn().Err(err).Str("barcode", barcode).Msg("cache write failed")
	}
}

func (c *productCache) Clear(ctx context.Context) {
	keys, err := c.store.Keys(ctx, KeyPrefix)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to list cache entries")
		return
	}

	for _, key := range keys {
		c.delete(ctx, key)
	}
	c.logger.Info().Int("entries", len(keys)).Msg("product cache cleared")
}

func (c *productCache) delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to delete cache entry")
	}
}
