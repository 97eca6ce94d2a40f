package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Auth       AuthConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	TeamSpirit TeamSpiritConfig
	Holiday    HolidayConfig
	Cache      CacheConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AuthConfig holds API bearer-token configuration. When disabled the API is
// open; intended for localhost-only deployments.
type AuthConfig struct {
	Enabled          bool
	Secret           string
	AccessExpiration string
}

type StorageConfig struct {
	// Type selects the key-value store backend: postgres, sqlite or memory.
	Type string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// TeamSpiritConfig points at the scrape agent that extracts the monthly
// punch table from the source system.
type TeamSpiritConfig struct {
	AgentURL     string
	FetchTimeout time.Duration
}

type HolidayConfig struct {
	APIURL          string
	RefreshInterval time.Duration
}

type CacheConfig struct {
	SnapshotTTL     time.Duration
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Auth = AuthConfig{
		Enabled:          getEnv("AUTH_ENABLED", "false") == "true",
		Secret:           getEnv("AUTH_SECRET_KEY", ""),
		AccessExpiration: getEnv("AUTH_ACCESS_EXPIRATION_TIME", "720h"),
	}

	config.Storage = StorageConfig{
		Type:       getEnv("STORAGE_TYPE", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "kintai.db"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	fetchTimeout, err := time.ParseDuration(getEnv("TEAMSPIRIT_FETCH_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TEAMSPIRIT_FETCH_TIMEOUT: %w", err)
	}

	config.TeamSpirit = TeamSpiritConfig{
		AgentURL:     getEnv("TEAMSPIRIT_AGENT_URL", "http://localhost:8090"),
		FetchTimeout: fetchTimeout,
	}

	holidayRefresh, err := time.ParseDuration(getEnv("HOLIDAY_REFRESH_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_REFRESH_INTERVAL: %w", err)
	}

	config.Holiday = HolidayConfig{
		APIURL:          getEnv("HOLIDAY_API_URL", "https://holidays-jp.github.io/api/v1/date.json"),
		RefreshInterval: holidayRefresh,
	}

	snapshotTTL, err := time.ParseDuration(getEnv("SNAPSHOT_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_CACHE_TTL: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("SNAPSHOT_REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_REFRESH_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		SnapshotTTL:     snapshotTTL,
		RefreshInterval: refreshInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for postgres storage")
		}
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET_KEY is required when AUTH_ENABLED=true")
	}

	if c.TeamSpirit.AgentURL == "" {
		return fmt.Errorf("TEAMSPIRIT_AGENT_URL is required")
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
