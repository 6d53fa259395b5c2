// Package resolver fetches products from the remote product databases.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodtruth/internal/barcode"
	"foodtruth/internal/metrics"
	"foodtruth/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Defaults for Config fields left zero.
const (
	DefaultUserAgent     = "FoodTruth/1.0 (contact@foodtruth.app)"
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerMinute = 100

	maxResponseBytes = 8 << 20
)

// errProductMissing marks a source that answered but does not know the product.
var errProductMissing = errors.New("product not in source")

// Resolver looks a barcode up across the configured sources.
type Resolver interface {
	// Resolve validates raw and tries each source in region order until one
	// returns the product. It never returns an error: every outcome is a ScanResult.
	Resolve(ctx context.Context, raw string) model.ScanResult
}

// Config holds resolver settings.
type Config struct {
	Sources       []Source
	UserAgent     string
	Timeout       time.Duration
	RatePerMinute int
	HTTPClient    *http.Client
}

type resolver struct {
	sources   []Source
	userAgent string
	timeout   time.Duration
	client    *http.Client
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// New creates a resolver. Zero config fields take their defaults.
func New(cfg Config, logger zerolog.Logger) Resolver {
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
		burst = cfg.RatePerMinute
	}

	return &resolver{
		sources:   cfg.Sources,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		client:    cfg.HTTPClient,
		limiter:   rate.NewLimiter(limit, burst),
		logger:    logger.With().Str("component", "resolver").Logger(),
	}
}

// found is a successful attempt.
type found struct {
	source  Source
	product *model.Product
}

func (r *resolver) Resolve(ctx context.Context, raw string) model.ScanResult {
	code, err := barcode.Validate(raw)
	if err != nil {
		return model.ScanResult{
			Status:  model.ScanError,
			Barcode: raw,
			Reason:  "InvalidFormat",
			Message: model.ErrInvalidFormat.Message,
		}
	}

	start := time.Now()
	defer func() { metrics.ObserveResolve(time.Since(start)) }()

	ordered := Order(r.sources, code.Region)

	hit, _, errs := firstHit(ctx, ordered, func(ctx context.Context, s Source) (found, error) {
		product, err := r.fetch(ctx, s, code.Code)
		if err != nil {
			return found{}, err
		}
		return found{source: s, product: product}, nil
	})

	if hit.product != nil {
		return model.ScanResult{
			Status:    model.ScanFound,
			Barcode:   code.Code,
			Product:   hit.product,
			Source:    hit.source.Name,
			SourceURL: hit.source.URL(code.Code),
		}
	}

	searched := make([]string, 0, len(ordered))
	for _, s := range ordered {
		searched = append(searched, s.Name)
	}

	allFailed := len(errs) > 0
	for _, err := range errs {
		if errors.Is(err, errProductMissing) {
			allFailed = false
			break
		}
	}

	return model.ScanResult{
		Status:           model.ScanNotFound,
		Barcode:          code.Code,
		SearchedSources:  searched,
		AllSourcesFailed: allFailed,
		Message:          model.ErrProductNotFound.Message,
	}
}

// firstHit calls fetch for each candidate in order and returns the first
// success with its index. Failures are collected and the loop moves on.
func firstHit[C, R any](ctx context.Context, candidates []C, fetch func(context.Context, C) (R, error)) (R, int, []error) {
	var zero R
	errs := make([]error, 0, len(candidates))
	for i, c := range candidates {
		result, err := fetch(ctx, c)
		if err == nil {
			return result, i, errs
		}
		errs = append(errs, err)
	}
	return zero, -1, errs
}

// productResponse is the envelope returned by the product endpoint.
type productResponse struct {
	Status        int            `json:"status"`
	StatusVerbose string         `json:"status_verbose"`
	Product       *model.Product `json:"product"`
}

// fetch performs one attempt against one source.
func (r *resolver) fetch(ctx context.Context, s Source, code string) (*model.Product, error) {
	logger := r.logger.With().Str("source", s.Name).Str("barcode", code).Logger()

	product, err := r.get(ctx, s, code)
	switch {
	case err == nil:
		metrics.ObserveSourceAttempt(s.Name, metrics.AttemptHit)
		logger.Debug().Msg("product found")
	case errors.Is(err, errProductMissing):
		metrics.ObserveSourceAttempt(s.Name, metrics.AttemptMiss)
		logger.Debug().Msg("product not in source")
	default:
		metrics.ObserveSourceAttempt(s.Name, metrics.AttemptFailure)
		logger.Warn().Err(err).Msg("source request failed, trying next source")
	}
	return product, err
}

func (r *resolver) get(ctx context.Context, s Source, code string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(code), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errProductMissing
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Status != 1 || body.Product == nil {
		return nil, errProductMissing
	}

	if body.Product.Code == "" {
		body.Product.Code = code
	}
	return body.Product, nil
}
