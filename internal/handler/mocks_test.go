package handler

import (
	"context"

	"foodtruth/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Lookup(ctx context.Context, raw string) model.ScanResult {
	return m.Called(ctx, raw).Get(0).(model.ScanResult)
}

func (m *MockProductService) Get(ctx context.Context, raw string) (*model.EnrichedProduct, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EnrichedProduct), args.Error(1)
}

func (m *MockProductService) Enrich(ctx context.Context, result model.ScanResult) *model.EnrichedProduct {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.EnrichedProduct)
}

func (m *MockProductService) ClearCache(ctx context.Context) {
	m.Called(ctx)
}

// MockAdditiveService is a mock implementation of AdditiveService.
type MockAdditiveService struct {
	mock.Mock
}

func (m *MockAdditiveService) Get(ctx context.Context, code string) (*model.AdditiveRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdditiveRecord), args.Error(1)
}

func (m *MockAdditiveService) Summarize(ctx context.Context, codes []string) model.AdditiveSummary {
	return m.Called(ctx, codes).Get(0).(model.AdditiveSummary)
}

// MockHistoryLog is a mock implementation of history.Log.
type MockHistoryLog struct {
	mock.Mock
}

func (m *MockHistoryLog) Add(ctx context.Context, barcode string, product *model.Product) {
	m.Called(ctx, barcode, product)
}

func (m *MockHistoryLog) List(ctx context.Context) []model.HistoryEntry {
	return m.Called(ctx).Get(0).([]model.HistoryEntry)
}

func (m *MockHistoryLog) Remove(ctx context.Context, barcode string) bool {
	return m.Called(ctx, barcode).Bool(0)
}

func (m *MockHistoryLog) Clear(ctx context.Context) {
	m.Called(ctx)
}

// MockPreferences is a mock implementation of preferences.Store.
type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) Get(ctx context.Context) model.Preferences {
	return m.Called(ctx).Get(0).(model.Preferences)
}

func (m *MockPreferences) Set(ctx context.Context, prefs model.Preferences) error {
	return m.Called(ctx, prefs).Error(0)
}

func (m *MockPreferences) Toggle(ctx context.Context, name string) (model.Preferences, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Preferences), args.Error(1)
}
