package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"foodtruth/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_CannotConnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, config.DatabaseConfig{
		Host:           "127.0.0.1",
		Port:           1,
		User:           "postgres",
		Password:       "postgres",
		Database:       "foodtruth",
		MaxConnections: 2,
		MinConnections: 0,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
	assert.Nil(t, pool)
}

func TestNewRedisClient_CannotConnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
	assert.Nil(t, client)
}

func TestOpenSQLite(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "in memory", path: ":memory:"},
		{name: "file in new directory", path: filepath.Join(t.TempDir(), "nested", "foodtruth.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db, err := OpenSQLite(ctx, tt.path, zerolog.Nop())
			require.NoError(t, err)
			defer db.Close()

			_, err = db.ExecContext(ctx, "INSERT INTO kv_store (key, value) VALUES (?, ?)", "k", []byte("v"))
			require.NoError(t, err)

			var value []byte
			require.NoError(t, db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", "k").Scan(&value))
			assert.Equal(t, []byte("v"), value)
		})
	}
}

func TestOpenBadger(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.BadgerConfig
		expectError string
	}{
		{name: "in memory", cfg: config.BadgerConfig{InMemory: true}},
		{name: "on disk", cfg: config.BadgerConfig{Path: filepath.Join(t.TempDir(), "badger")}},
		{name: "missing path", cfg: config.BadgerConfig{}, expectError: "path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := OpenBadger(tt.cfg, zerolog.Nop())
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, db.Close())
		})
	}
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.StoreConfig
		expectError string
	}{
		{name: "memory", cfg: config.StoreConfig{Backend: config.BackendMemory}},
		{name: "badger", cfg: config.StoreConfig{Backend: config.BackendBadger, Badger: config.BadgerConfig{InMemory: true}}},
		{name: "sqlite", cfg: config.StoreConfig{Backend: config.BackendSQLite, SQLite: config.SQLiteConfig{Path: ":memory:"}}},
		{name: "unknown", cfg: config.StoreConfig{Backend: "mongo"}, expectError: "unsupported store backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := OpenStore(ctx, tt.cfg, zerolog.Nop())
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Set(ctx, "product_cache_1", []byte("x")))
			got, err := store.Get(ctx, "product_cache_1")
			require.NoError(t, err)
			assert.Equal(t, []byte("x"), got)
		})
	}
}
