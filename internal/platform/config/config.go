package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	LogLevel        slog.Level
	ShutdownTimeout time.Duration

	// Storage
	StorageDriver      string
	DatabaseURL        string
	SQLitePath         string
	RunMigrations      bool
	DBConnectTimeout   time.Duration
	DBConnectMaxWait   time.Duration
	DBOperationTimeout time.Duration
	DBMaxConns         int32

	// HTTP middleware
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "300-M"; empty disables

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string
}

var durationDefaults = map[string]time.Duration{
	"SHUTDOWN_TIMEOUT":       10 * time.Second,
	"DB_CONNECT_TIMEOUT":     5 * time.Second,
	"DB_CONNECT_MAX_ELAPSED": 30 * time.Second,
	"DB_OPERATION_TIMEOUT":   5 * time.Second,
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "finance.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	for key, d := range durationDefaults {
		v.SetDefault(key, d.String())
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           parseLevel(v.GetString("LOG_LEVEL")),
		ShutdownTimeout:    durationOrDefault(v, "SHUTDOWN_TIMEOUT"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		DBConnectTimeout:   durationOrDefault(v, "DB_CONNECT_TIMEOUT"),
		DBConnectMaxWait:   durationOrDefault(v, "DB_CONNECT_MAX_ELAPSED"),
		DBOperationTimeout: durationOrDefault(v, "DB_OPERATION_TIMEOUT"),
		DBMaxConns:         v.GetInt32("DB_MAX_CONNS"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          strings.TrimSpace(v.GetString("RATE_LIMIT")),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q: expected %s or %s", c.StorageDriver, DriverPostgres, DriverSQLite)
	}
	if c.DBMaxConns < 0 {
		return fmt.Errorf("DB_MAX_CONNS must not be negative")
	}
	return nil
}

func durationOrDefault(v *viper.Viper, key string) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		fallback := durationDefaults[key]
		slog.Warn("Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", fallback))
		return fallback
	}
	return d
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		slog.Warn("Invalid LOG_LEVEL, using info", slog.String("value", raw))
		return slog.LevelInfo
	}
	return level
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
