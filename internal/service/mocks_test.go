package service

import (
	"context"

	"foodtruth/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockResolver is a mock implementation of resolver.Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, raw string) model.ScanResult {
	args := m.Called(ctx, raw)
	return args.Get(0).(model.ScanResult)
}

// MockProductCache is a mock implementation of cache.ProductCache.
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, barcode string) (*model.Product, bool) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Product), args.Bool(1)
}

func (m *MockProductCache) Put(ctx context.Context, barcode string, product *model.Product) {
	m.Called(ctx, barcode, product)
}

func (m *MockProductCache) Clear(ctx context.Context) {
	m.Called(ctx)
}

// MockHistoryLog is a mock implementation of history.Log.
type MockHistoryLog struct {
	mock.Mock
}

func (m *MockHistoryLog) Add(ctx context.Context, barcode string, product *model.Product) {
	m.Called(ctx, barcode, product)
}

func (m *MockHistoryLog) List(ctx context.Context) []model.HistoryEntry {
	args := m.Called(ctx)
	return args.Get(0).([]model.HistoryEntry)
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
