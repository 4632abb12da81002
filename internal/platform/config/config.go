package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP       HTTPConfig
	Storage    StorageConfig
	Pagination PaginationConfig
	Logging    LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is "memory" or "postgres".
	Backend     string
	DatabaseURL string
}

// PaginationConfig carries listing defaults. The default page limit is
// deployment configuration, not a module-level constant.
type PaginationConfig struct {
	DefaultLimit int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultStorageBackend    = "memory"
	defaultPageLimit         = 20
	defaultLoggingLevel      = "info"
	defaultLoggingFormat     = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Port:              valueOrDefault("PORT", defaultPort),
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ShutdownTimeout:   defaultShutdownTimeout,
		},
		Storage: StorageConfig{
			Backend:     valueOrDefault("STORAGE_BACKEND", defaultStorageBackend),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: parseIntWithDefault("PAGINATE_DEFAULT_LIMIT", defaultPageLimit),
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
		},
	}

	if cfg.Pagination.DefaultLimit <= 0 {
		return Config{}, fmt.Errorf("PAGINATE_DEFAULT_LIMIT must be positive, got %d", cfg.Pagination.DefaultLimit)
	}
	if cfg.Storage.Backend == "postgres" && cfg.Storage.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}
	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
