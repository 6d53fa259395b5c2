// Package metrics holds the Prometheus collectors of the lookup pipeline.
// Collectors register with the default registry on package init.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodtruth_lookups_total",
		Help: "Barcode lookups by outcome",
	}, []string{"outcome"})

	sourceAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodtruth_source_attempts_total",
		Help: "Remote source attempts by source and outcome",
	}, []string{"source", "outcome"})

	cacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodtruth_cache_requests_total",
		Help: "Product cache reads by result",
	}, []string{"result"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foodtruth_resolve_duration_seconds",
		Help:    "Time spent resolving a barcode against remote sources",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	})
)

// Lookup outcomes.
const (
	OutcomeFound    = "found"
	OutcomeCached   = "cached"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

// Source attempt outcomes.
const (
	AttemptHit     = "hit"
	AttemptMiss    = "miss"
	AttemptFailure = "failure"
)

// ObserveLookup counts one lookup.
func ObserveLookup(outcome string) {
	lookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSourceAttempt counts one request to a remote source.
func ObserveSourceAttempt(source, outcome string) {
	sourceAttemptsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveCache counts a cache hit or miss.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestsTotal.WithLabelValues(result).Inc()
}

// ObserveResolve records how long a resolve took.
func ObserveResolve(d time.Duration) {
	resolveDuration.Observe(d.Seconds())
}
