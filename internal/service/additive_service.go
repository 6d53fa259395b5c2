package service

import (
	"context"

	"foodtruth/internal/additive"
	"foodtruth/internal/model"

	"github.com/rs/zerolog"
)

// additiveService implements AdditiveService.
type additiveService struct {
	kb     additive.KnowledgeBase
	logger zerolog.Logger
}

// NewAdditiveService creates a new additive service.
func NewAdditiveService(kb additive.KnowledgeBase, logger zerolog.Logger) AdditiveService {
	return &additiveService{
		kb:     kb,
		logger: logger.With().Str("service", "additive").Logger(),
	}
}

// Get returns the record for a raw additive code.
func (s *additiveService) Get(ctx context.Context, code string) (*model.AdditiveRecord, error) {
	record, ok := s.kb.Classify(code)
	if !ok {
		s.logger.Debug().Str("code", code).Msg("unidentified additive")
		return nil, model.ErrAdditiveNotFound
	}
	return &record, nil
}

// Summarize aggregates the risk of a list of additive codes.
func (s *additiveService) Summarize(ctx context.Context, codes []string) model.AdditiveSummary {
	return s.kb.Summarize(codes)
}
