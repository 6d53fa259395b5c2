package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"foodtruth/internal/barcode"
	"foodtruth/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nutellaBody = `{
  "code": "3017620422003",
  "status": 1,
  "status_verbose": "product found",
  "product": {
    "code": "3017620422003",
    "product_name": "Nutella",
    "brands": "Ferrero",
    "nutriscore_grade": "e",
    "additives_tags": ["en:e322", "en:e322i"],
    "nutriments": {"sugars_100g": "56.3", "fat_100g": 30.9}
  }
}`

const notFoundBody = `{"code": "0000000000000", "status": 0, "status_verbose": "product not found"}`

// requestLog records which fake source served each request, in order.
type requestLog struct {
	mu    sync.Mutex
	names []string
}

func (l *requestLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *requestLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

// fakeSource starts a server that logs each request and delegates to handler.
func fakeSource(t *testing.T, name string, log *requestLog, handler http.HandlerFunc) Source {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(name)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	region := barcode.RegionDefault
	if name == "india" {
		region = barcode.RegionDomestic
	}
	return Source{Name: name, BaseURL: server.URL + "/api/v2/product", Region: region}
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestResolver(sources ...Source) Resolver {
	return New(Config{Sources: sources, Timeout: 200 * time.Millisecond}, zerolog.Nop())
}

func TestResolve_FoundInFirstSource(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003.json", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		respond(http.StatusOK, nutellaBody)(w, r)
	})
	india := fakeSource(t, "india", log, respond(http.StatusOK, notFoundBody))

	result := newTestResolver(world, india).Resolve(context.Background(), "3017620422003")

	require.Equal(t, model.ScanFound, result.Status)
	require.True(t, result.Found())
	assert.Equal(t, "world", result.Source)
	assert.Equal(t, world.BaseURL+"/3017620422003.json", result.SourceURL)
	assert.Equal(t, "Nutella", result.Product.DisplayName())
	require.NotNil(t, result.Product.Nutriments)
	require.NotNil(t, result.Product.Nutriments.Sugars)
	assert.InDelta(t, 56.3, *result.Product.Nutriments.Sugars, 0.001)
	assert.Equal(t, []string{"world"}, log.list())
}

func TestResolve_SourceOrderByRegion(t *testing.T) {
	tests := []struct {
		name      string
		barcode   string
		wantOrder []string
	}{
		{name: "domestic barcode tries india first", barcode: "8901030895565", wantOrder: []string{"india", "world"}},
		{name: "default barcode tries world first", barcode: "0049000028911", wantOrder: []string{"world", "india"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &requestLog{}
			world := fakeSource(t, "world", log, respond(http.StatusOK, notFoundBody))
			india := fakeSource(t, "india", log, respond(http.StatusOK, notFoundBody))

			result := newTestResolver(world, india).Resolve(context.Background(), tt.barcode)

			assert.Equal(t, model.ScanNotFound, result.Status)
			assert.Equal(t, tt.wantOrder, result.SearchedSources)
			assert.Equal(t, tt.wantOrder, log.list())
			assert.False(t, result.AllSourcesFailed)
		})
	}
}

func TestResolve_FallsBackOnRecoverableFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: respond(http.StatusInternalServerError, `{"error":"boom"}`)},
		{name: "not found status code", handler: respond(http.StatusNotFound, notFoundBody)},
		{name: "explicit not found", handler: respond(http.StatusOK, notFoundBody)},
		{name: "malformed json", handler: respond(http.StatusOK, `{"status": 1, "product": {`)},
		{name: "found status without product", handler: respond(http.StatusOK, `{"status": 1}`)},
		{name: "timeout", handler: func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &requestLog{}
			world := fakeSource(t, "world", log, tt.handler)
			india := fakeSource(t, "india", log, respond(http.StatusOK, nutellaBody))

			result := newTestResolver(world, india).Resolve(context.Background(), "3017620422003")

			require.Equal(t, model.ScanFound, result.Status)
			assert.Equal(t, "india", result.Source)
			assert.Equal(t, []string{"world", "india"}, log.list())
		})
	}
}

func TestResolve_AllSourcesFailed(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, respond(http.StatusBadGateway, ""))
	india := fakeSource(t, "india", log, respond(http.StatusServiceUnavailable, ""))

	result := newTestResolver(world, india).Resolve(context.Background(), "3017620422003")

	assert.Equal(t, model.ScanNotFound, result.Status)
	assert.Equal(t, []string{"world", "india"}, result.SearchedSources)
	assert.True(t, result.AllSourcesFailed)
	assert.Equal(t, model.ErrProductNotFound.Message, result.Message)
	assert.Nil(t, result.Product)
}

func TestResolve_InvalidFormatMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	r := newTestResolver(Source{Name: "world", BaseURL: server.URL, Region: barcode.RegionDefault})

	for _, raw := range []string{"", "1234567", "12345678901234", "12a45678", "abc"} {
		result := r.Resolve(context.Background(), raw)
		assert.Equal(t, model.ScanError, result.Status, raw)
		assert.Equal(t, "InvalidFormat", result.Reason, raw)
		assert.Equal(t, model.ErrInvalidFormat.Message, result.Message, raw)
	}
	assert.Zero(t, calls.Load())
}

func TestResolve_FillsMissingProductCode(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, respond(http.StatusOK, `{"status": 1, "product": {"product_name": "Water"}}`))

	result := newTestResolver(world).Resolve(context.Background(), " 96385074 ")

	require.True(t, result.Found())
	assert.Equal(t, "96385074", result.Barcode)
	assert.Equal(t, "96385074", result.Product.Code)
}

func TestResolve_CustomUserAgent(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "FoodTruthTest/2.0", r.Header.Get("User-Agent"))
		respond(http.StatusOK, nutellaBody)(w, r)
	})

	r := New(Config{Sources: []Source{world}, UserAgent: "FoodTruthTest/2.0"}, zerolog.Nop())
	result := r.Resolve(context.Background(), "3017620422003")

	assert.True(t, result.Found())
}

func TestResolve_CancelledContext(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, respond(http.StatusOK, nutellaBody))
	india := fakeSource(t, "india", log, respond(http.StatusOK, nutellaBody))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestResolver(world, india).Resolve(ctx, "3017620422003")

	assert.Equal(t, model.ScanNotFound, result.Status)
	assert.True(t, result.AllSourcesFailed)
	assert.Empty(t, log.list())
}

func TestResolve_ThrottledAttemptStaysWithinTimeout(t *testing.T) {
	log := &requestLog{}
	world := fakeSource(t, "world", log, respond(http.StatusInternalServerError, `{}`))
	india := fakeSource(t, "india", log, respond(http.StatusOK, nutellaBody))

	r := New(Config{
		Sources:       []Source{world, india},
		Timeout:       200 * time.Millisecond,
		RatePerMinute: 1,
	}, zerolog.Nop())

	start := time.Now()
	result := r.Resolve(context.Background(), "3017620422003")

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, model.ScanNotFound, result.Status)
	assert.True(t, result.AllSourcesFailed)
	assert.Equal(t, []string{"world", "india"}, result.SearchedSources)
	assert.Equal(t, []string{"world"}, log.list())
}

func TestFirstHit(t *testing.T) {
	var tried []int
	result, idx, errs := firstHit(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, n int) (string, error) {
		tried = append(tried, n)
		if n == 3 {
			return "three", nil
		}
		return "", errProductMissing
	})

	assert.Equal(t, "three", result)
	assert.Equal(t, 2, idx)
	assert.Len(t, errs, 2)
	assert.Equal(t, []int{1, 2, 3}, tried)
}

func TestFirstHit_NoCandidates(t *testing.T) {
	result, idx, errs := firstHit(context.Background(), nil, func(_ context.Context, n int) (string, error) {
		t.Error("fetch should not be called")
		return "", nil
	})

	assert.Empty(t, result)
	assert.Equal(t, -1, idx)
	assert.Empty(t, errs)
}
