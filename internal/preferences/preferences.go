// Package preferences persists the user's dietary preferences.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"foodtruth/internal/model"
	"foodtruth/internal/repository"

	"github.com/rs/zerolog"
)

// Key is the store key holding the preferences.
const Key = "foodtruth_preferences"

// Store reads and writes preferences. Unreadable or missing preferences
// load as the defaults (every flag off).
type Store interface {
	Get(ctx context.Context) model.Preferences
	Set(ctx context.Context, prefs model.Preferences) error
	// Toggle flips the named flag and returns the updated preferences.
	// Unknown names return model.ErrUnknownPreference.
	Toggle(ctx context.Context, name string) (model.Preferences, error)
}

type store struct {
	mu     sync.Mutex
	kv     repository.Store
	logger zerolog.Logger
}

// New creates a preferences store over kv.
func New(kv repository.Store, logger zerolog.Logger) Store {
	return &store{
		kv:     kv,
		logger: logger.With().Str("component", "preferences").Logger(),
	}
}

func (s *store) Get(ctx context.Context) model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *store) Set(ctx context.Context, prefs model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, prefs)
}

func (s *store) Toggle(ctx context.Context, name string) (model.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.load(ctx)
	switch name {
	case model.PreferenceVegetarian:
		prefs.Vegetarian = !prefs.Vegetarian
	case model.PreferenceVegan:
		prefs.Vegan = !prefs.Vegan
	case model.PreferenceGlutenFree:
		prefs.GlutenFree = !prefs.GlutenFree
	default:
		return prefs, model.ErrUnknownPreference
	}

	if err := s.save(ctx, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func (s *store) load(ctx context.Context) model.Preferences {
	var prefs model.Preferences

	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, repository.ErrNotFound) {
		return prefs
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read preferences, using defaults")
		return prefs
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		s.logger.Warn().Err(err).Msg("unreadable preferences, using defaults")
		return model.Preferences{}
	}
	return prefs
}

func (s *store) save(ctx context.Context, prefs model.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to write preferences")
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
