package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/RuvinSL/aeo-analyzer/pkg/logger"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the analyzer service settings.
type Config struct {
	Port         string
	Version      string
	LogLevel     slog.Level
	LogToFile    bool
	LogDir       string
	FetchTimeout time.Duration

	// CacheTTL is the freshness window for reusing a stored analysis.
	CacheTTL     time.Duration
	StoreBackend string
	RedisURL     string
	RecentLimit  int
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a validated Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		Version:      getEnv("APP_VERSION", "dev"),
		LogLevel:     logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		LogToFile:    getBool("LOG_TO_FILE", false),
		LogDir:       getEnv("LOG_DIR", "./logs"),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 30*time.Second),
		CacheTTL:     getDuration("CACHE_TTL", 24*time.Hour),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		RedisURL:     os.Getenv("REDIS_URL"),
		RecentLimit:  getInt("RECENT_LIMIT", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("RECENT_LIMIT must be positive, got %d", c.RecentLimit)
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis; got %q", c.StoreBackend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
