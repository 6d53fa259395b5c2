package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"foodtruth/internal/barcode"
	"foodtruth/internal/config"
	"foodtruth/internal/database"
	"foodtruth/internal/resolver"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// SetupTestDB creates a PostgreSQL test container, applies the store schema
// and returns a pool for direct inspection.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Config:    dbConfig,
	}
}

// CleanupDB removes every stored key.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM kv_store"); err != nil {
		t.Logf("failed to clean kv_store: %v", err)
	}
}

// StoredKeys lists the keys currently in kv_store.
func StoredKeys(t *testing.T, pool *pgxpool.Pool) []string {
	t.Helper()

	rows, err := pool.Query(context.Background(), "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		t.Fatalf("failed to list keys: %v", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			t.Fatalf("failed to scan key: %v", err)
		}
		keys = append(keys, key)
	}
	return keys
}

// FakeOFF is a stand-in for the regional Open Food Facts instances.
type FakeOFF struct {
	mu       sync.Mutex
	requests []string
	Sources  []resolver.Source
}

// NewFakeOFF starts a world and an india server. products maps a source
// name to the barcodes it knows and their product JSON.
func NewFakeOFF(t *testing.T, products map[string]map[string]string) *FakeOFF {
	t.Helper()

	f := &FakeOFF{}
	for _, name := range []string{"world", "india"} {
		known := products[name]
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := strings.TrimSuffix(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], ".json")

			f.mu.Lock()
			f.requests = append(f.requests, name+":"+code)
			f.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			body, ok := known[code]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
				return
			}
			w.Write([]byte(`{"status":1,"product":` + body + `}`))
		}))
		t.Cleanup(server.Close)

		region := barcode.RegionDefault
		if name == "india" {
			region = barcode.RegionDomestic
		}
		f.Sources = append(f.Sources, resolver.Source{
			Name:    name,
			BaseURL: server.URL + "/api/v2/product",
			Region:  region,
		})
	}
	return f
}

// Requests returns the "source:barcode" pairs received so far.
func (f *FakeOFF) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}
