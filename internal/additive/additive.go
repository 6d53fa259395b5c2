package additive

import (
	"context"

	"foodtruth/internal/model"
)

// KnowledgeBase resolves additive tags to classified records.
type KnowledgeBase interface {
	// Classify normalizes a raw additive tag (e.g. "en:e160a", "E160A(ii)")
	// and returns the matching record. The bool is false when the code is unidentified.
	Classify(raw string) (model.AdditiveRecord, bool)

	// ClassifyAll classifies every tag, keeping unidentified ones in the result.
	ClassifyAll(tags []string) []model.ClassifiedAdditive

	// Summarize counts the tags per risk tier.
	Summarize(tags []string) model.AdditiveSummary

	// Size returns the number of top-level records.
	Size() int
}

// Loader reads an additive database from some location.
type Loader interface {
	// Load reads the database found at path. Plain and gzipped JSON are both accepted.
	Load(ctx context.Context, path string) (*Database, error)
}

// Database is the on-disk shape of the Codex additive list.
type Database struct {
	Metadata  Metadata         `json:"metadata"`
	Additives map[string]Entry `json:"additives"`
}

// Metadata describes where a Database came from.
type Metadata struct {
	Source       string `json:"source"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	TotalEntries int    `json:"total_entries"`
}

// Entry is one additive as listed in the database, before risk derivation.
type Entry struct {
	Name            string            `json:"name"`
	FunctionalClass []string          `json:"functional_class"`
	Purpose         []string          `json:"purpose,omitempty"`
	Subtypes        map[string]string `json:"subtypes,omitempty"`
}
