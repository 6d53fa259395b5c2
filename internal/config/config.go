package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Store     StoreConfig
	Resolver  ResolverConfig
	Cache     CacheConfig
	History   HistoryConfig
	Additives AdditivesConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// StoreConfig selects and configures the local key-value store.
type StoreConfig struct {
	Backend  string
	Badger   BadgerConfig
	SQLite   SQLiteConfig
	Postgres DatabaseConfig
	Redis    RedisConfig
}

// BadgerConfig holds embedded BadgerDB settings.
type BadgerConfig struct {
	Path     string
	InMemory bool
}

// SQLiteConfig holds SQLite settings.
type SQLiteConfig struct {
	Path string
}

// DatabaseConfig holds PostgreSQL-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// ResolverConfig holds remote product source settings.
type ResolverConfig struct {
	UserAgent     string
	Timeout       time.Duration
	RatePerMinute int
	SourcesFile   string // optional YAML list of sources
}

// CacheConfig holds product cache settings.
type CacheConfig struct {
	TTL time.Duration
}

// HistoryConfig holds scan history settings.
type HistoryConfig struct {
	MaxEntries int
}

// AdditivesConfig locates the additive database. With no path and S3
// disabled the built-in database is used.
type AdditivesConfig struct {
	Path string
	S3   S3Config
}

// S3Config holds AWS S3 configuration for the additive database.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "additives/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendBadger),
			Badger: BadgerConfig{
				Path:     getEnv("BADGER_PATH", "data/badger"),
				InMemory: getEnvAsBool("BADGER_IN_MEMORY", false),
			},
			SQLite: SQLiteConfig{
				Path: getEnv("SQLITE_PATH", "data/foodtruth.db"),
			},
			Postgres: DatabaseConfig{
				Host:            getEnv("DB_HOST", "localhost"),
				Port:            getEnvAsInt("DB_PORT", 5432),
				User:            getEnv("DB_USER", "postgres"),
				Password:        getEnv("DB_PASSWORD", ""),
				Database:        getEnv("DB_NAME", "foodtruth"),
				MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
				MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 2),
				MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			},
			Redis: RedisConfig{
				Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
				Password:  getEnv("REDIS_PASSWORD", ""),
				DB:        getEnvAsInt("REDIS_DB", 0),
				Namespace: getEnv("REDIS_NAMESPACE", "foodtruth:"),
			},
		},
		Resolver: ResolverConfig{
			UserAgent:     getEnv("RESOLVER_USER_AGENT", "FoodTruth/1.0 (contact@foodtruth.app)"),
			Timeout:       getEnvAsDuration("RESOLVER_TIMEOUT", 10*time.Second),
			RatePerMinute: getEnvAsInt("RESOLVER_RATE_PER_MINUTE", 100),
			SourcesFile:   getEnv("RESOLVER_SOURCES_FILE", ""),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
		History: HistoryConfig{
			MaxEntries: getEnvAsInt("HISTORY_MAX_ENTRIES", 100),
		},
		Additives: AdditivesConfig{
			Path: getEnv("ADDITIVES_PATH", ""),
			S3: S3Config{
				Enabled: getEnvAsBool("S3_ENABLED", false),
				Bucket:  getEnv("S3_BUCKET", ""),
				Region:  getEnv("S3_REGION", "us-east-1"),
				Prefix:  getEnv("S3_PREFIX", "additives/"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Resolver.UserAgent == "" {
		return fmt.Errorf("resolver user agent is required")
	}

	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver timeout must be positive")
	}

	if c.Resolver.RatePerMinute < 0 {
		return fmt.Errorf("resolver rate per minute cannot be negative")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	if c.History.MaxEntries < 1 {
		return fmt.Errorf("history max entries must be at least 1")
	}

	if c.Additives.S3.Enabled {
		if c.Additives.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Additives.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}

// Validate checks the selected backend's settings.
func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendBadger:
		if !c.Badger.InMemory && c.Badger.Path == "" {
			return fmt.Errorf("badger path is required unless running in memory")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case BackendPostgres:
		return c.Postgres.Validate()
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, badger, sqlite, postgres, or redis)", c.Backend)
	}
	return nil
}

// Validate checks the PostgreSQL settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration ("10s", "24h") or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
