package cache

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"foodtruth/internal/model"
	"foodtruth/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of repository.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(store repository.Store) (ProductCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(store, zerolog.Nop(), WithClock(clock.Now)), clock
}

func nutella() *model.Product {
	return &model.Product{Code: "3017620422003", ProductName: "Nutella", NutriscoreGrade: model.GradeE}
}

func TestProductCache_PutThenGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(repository.NewMemoryStore())

	c.Put(ctx, "3017620422003", nutella())

	got, ok := c.Get(ctx, "3017620422003")
	require.True(t, ok)
	assert.Equal(t, nutella(), got)
}

func TestProductCache_Miss(t *testing.T) {
	c, _ := newTestCache(repository.NewMemoryStore())

	got, ok := c.Get(context.Background(), "3017620422003")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestProductCache_Expiry(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{name: "fresh", elapsed: 0, wantHit: true},
		{name: "just under a day", elapsed: 24*time.Hour - time.Millisecond, wantHit: true},
		{name: "exactly a day", elapsed: 24 * time.Hour, wantHit: false},
		{name: "over a day", elapsed: 25 * time.Hour, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := repository.NewMemoryStore()
			c, clock := newTestCache(store)

			c.Put(ctx, "3017620422003", nutella())
			clock.Advance(tt.elapsed)

			_, ok := c.Get(ctx, "3017620422003")
			assert.Equal(t, tt.wantHit, ok)

			_, err := store.Get(ctx, Key("3017620422003"))
			if tt.wantHit {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, repository.ErrNotFound, "expired entries are deleted on read")
			}
		})
	}
}

func TestProductCache_CustomTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	c := New(repository.NewMemoryStore(), zerolog.Nop(), WithClock(clock.Now), WithTTL(time.Hour))

	c.Put(ctx, "96385074", &model.Product{Code: "96385074"})
	clock.Advance(time.Hour)

	_, ok := c.Get(ctx, "96385074")
	assert.False(t, ok)
}

func TestProductCache_StoredShape(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c, clock := newTestCache(store)

	c.Put(ctx, "96385074", &model.Product{Code: "96385074"})

	raw, err := store.Get(ctx, "product_cache_96385074")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"product":{"code":"96385074","packaging":null},"timestamp":`+strconv.FormatInt(clock.Now().UnixMilli(), 10)+`}`,
		string(raw))
}

func TestProductCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c, _ := newTestCache(store)

	for _, raw := range []string{`not json`, `{"timestamp": 1}`, `{"product": "x"}`} {
		require.NoError(t, store.Set(ctx, Key("3017620422003"), []byte(raw)))

		got, ok := c.Get(ctx, "3017620422003")
		assert.False(t, ok, raw)
		assert.Nil(t, got, raw)
	}
}

func TestProductCache_StoreFaultsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Get", ctx, Key("3017620422003")).Return(nil, errors.New("disk full"))
	store.On("Set", ctx, Key("3017620422003"), mock.Anything).Return(errors.New("disk full"))
	store.On("Keys", ctx, KeyPrefix).Return(nil, errors.New("disk full"))

	c, _ := newTestCache(store)

	assert.NotPanics(t, func() {
		_, ok := c.Get(ctx, "3017620422003")
		assert.False(t, ok)
		c.Put(ctx, "3017620422003", nutella())
		c.Clear(ctx)
	})
	store.AssertExpectations(t)
}

func TestProductCache_PutNilIsNoop(t *testing.T) {
	store := new(MockStore)
	c, _ := newTestCache(store)

	c.Put(context.Background(), "3017620422003", nil)

	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductCache_ClearOnlyTouchesProducts(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	c, _ := newTestCache(store)

	c.Put(ctx, "3017620422003", nutella())
	c.Put(ctx, "8901030895565", &model.Product{Code: "8901030895565"})
	require.NoError(t, store.Set(ctx, "scan_history", []byte("[]")))
	require.NoError(t, store.Set(ctx, "foodtruth_preferences", []byte("{}")))

	c.Clear(ctx)

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"foodtruth_preferences", "scan_history"}, keys)

	_, ok := c.Get(ctx, "3017620422003")
	assert.False(t, ok)
}

func TestProductCache_ClearContinuesPastDeleteFailure(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Keys", ctx, KeyPrefix).Return([]string{"product_cache_1", "product_cache_2"}, nil)
	store.On("Delete", ctx, "product_cache_1").Return(errors.New("locked"))
	store.On("Delete", ctx, "product_cache_2").Return(nil)

	c, _ := newTestCache(store)
	c.Clear(ctx)

	store.AssertExpectations(t)
}
