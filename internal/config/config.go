package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Directory DirectoryConfig
	Fetch     FetchConfig
	Sources   SourcesConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds the path of the symbol-cache database
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// DirectoryConfig holds symbol-directory bootstrap and refresh settings
type DirectoryConfig struct {
	// Markets to union into the directory, in priority order
	// (earlier markets win duplicate codes).
	Markets []string
	// RefreshSchedule is an optional cron spec for background directory
	// rebuilds. Empty disables scheduled refresh.
	RefreshSchedule string
}

// FetchConfig bounds the per-request price fetching
type FetchConfig struct {
	// Concurrency is the worker-pool size for per-symbol fetches.
	// 1 processes symbols strictly sequentially.
	Concurrency int
	// Timeout applies to each individual price fetch.
	Timeout time.Duration
}

// SourcesConfig holds upstream base URLs, overridable for testing
type SourcesConfig struct {
	YahooBaseURL  string
	NasdaqBaseURL string
	KRXBaseURL    string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/symbol_directory.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Directory: DirectoryConfig{
			Markets:         splitList(getEnv("MARKETS", "KOSPI,KOSDAQ,ETF/KR,NASDAQ,NYSE")),
			RefreshSchedule: getEnv("DIRECTORY_REFRESH_CRON", ""),
		},
		Fetch: FetchConfig{
			Concurrency: getEnvInt("FETCH_CONCURRENCY", 4),
			Timeout:     time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Sources: SourcesConfig{
			YahooBaseURL:  getEnv("YAHOO_BASE_URL", ""),
			NasdaqBaseURL: getEnv("NASDAQ_BASE_URL", ""),
			KRXBaseURL:    getEnv("KRX_BASE_URL", ""),
		},
	}

	if config.Fetch.Concurrency < 1 {
		return nil, fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
