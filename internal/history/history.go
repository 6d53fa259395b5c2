// Package history records scanned barcodes, most recent first.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"foodtruth/internal/model"
	"foodtruth/internal/repository"

	"github.com/rs/zerolog"
)

// Key is the store key holding the whole history.
const Key = "scan_history"

// DefaultMaxEntries caps the history when no limit is configured.
const DefaultMaxEntries = 100

// Log is the scan history. Storage faults are logged and swallowed:
// an unreadable history reads as empty and failed writes are dropped.
type Log interface {
	// Add records a scan, moving an existing entry for the barcode to the front.
	Add(ctx context.Context, barcode string, product *model.Product)

	// List returns the entries, newest first.
	List(ctx context.Context) []model.HistoryEntry

	// Remove deletes the entry for barcode and reports whether one existed.
	Remove(ctx context.Context, barcode string) bool

	// Clear deletes every entry.
	Clear(ctx context.Context)
}

// Option configures a Log.
type Option func(*historyLog)

// WithMaxEntries caps the number of entries kept; the oldest are dropped.
func WithMaxEntries(n int) Option {
	return func(l *historyLog) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *historyLog) {
		l.now = now
	}
}

type historyLog struct {
	// mu serialises the read-modify-write of the single history key.
	mu         sync.Mutex
	store      repository.Store
	maxEntries int
	now        func() time.Time
	logger     zerolog.Logger
}

// New creates a history log over store.
func New(store repository.Store, logger zerolog.Logger, opts ...Option) Log {
	l := &historyLog{
		store:      store,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		logger:     logger.With().Str("component", "history").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *historyLog) Add(ctx context.Context, barcode string, product *model.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load(ctx)

	updated := make([]model.HistoryEntry, 0, len(entries)+1)
	updated = append(updated, model.HistoryEntry{
		Barcode:   barcode,
		Timestamp: l.now().UnixMilli(),
		Product:   product,
	})
	for _, e := range entries {
		if e.Barcode != barcode {
			updated = append(updated, e)
		}
	}
	if len(updated) > l.maxEntries {
		updated = updated[:l.maxEntries]
	}

	l.save(ctx, updated)
}

func (l *historyLog) List(ctx context.Context) []model.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.load(ctx)
}

func (l *historyLog) Remove(ctx context.Context, barcode string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load(ctx)
	kept := entries[:0]
	for _, e := range entries {
		if e.Barcode != barcode {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false
	}

	l.save(ctx, kept)
	return true
}

func (l *historyLog) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, Key); err != nil {
		l.logger.Warn().Err(err).Msg("failed to clear history")
	}
}

func (l *historyLog) load(ctx context.Context) []model.HistoryEntry {
	raw, err := l.store.Get(ctx, Key)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.HistoryEntry{}
	}
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to read history")
		return []model.HistoryEntry{}
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn().Err(err).Msg("unreadable history, starting empty")
		return []model.HistoryEntry{}
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries
}

func (l *historyLog) save(ctx context.Context, entries []model.HistoryEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to encode history")
		return
	}
	if err := l.store.Set(ctx, Key, raw); err != nil {
		l.logger.Warn().Err(err).Msg("failed to write history")
	}
}
