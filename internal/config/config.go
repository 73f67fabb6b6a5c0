package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Sheets SheetsConfig
	Redis  RedisConfig
	Worker WorkerConfig
	CORS   CORSConfig
}

// SheetsConfig contains Google Sheets backing-store parameters.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	PublisherTable  string
	POTable         string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	RefreshInterval time.Duration
	DatasetTTL      time.Duration
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Google Sheets backing store
	cfg.Sheets = SheetsConfig{
		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", "keys/service-account.json"),
		PublisherTable:  getEnv("SHEETS_PUBLISHER_TABLE", "dim_publisher"),
		POTable:         getEnv("SHEETS_PO_TABLE", "pom"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// CORS
	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
		}
	}

	// Workers (durations)
	var err error
	if cfg.Worker.RefreshInterval, err = parseDurationEnv("DATASET_REFRESH_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid DATASET_REFRESH_INTERVAL: %w", err)
	}
	if cfg.Worker.DatasetTTL, err = parseDurationEnv("DATASET_CACHE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid DATASET_CACHE_TTL: %w", err)
	}

	if cfg.Sheets.SpreadsheetID == "" {
		return nil, errors.New("sheets configuration incomplete: SHEETS_SPREADSHEET_ID must be set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
