// Package config reads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Dataset sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds the service settings
type Config struct {
	Port           string
	DatasetPath    string
	DatasetSheet   string
	DatasetSource  string
	PostgresDSN    string
	PostgresTable  string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	PreviewRows    int
}

// Load reads .env from the working directory (if present) and the environment.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles loads the given env files, skipping missing ones, then builds a
// Config from the environment. Variables already set are not overridden.
func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8001"),
		DatasetPath:    getEnv("DATASET_PATH", "net_zero_dashboard_data.xlsx"),
		DatasetSheet:   os.Getenv("DATASET_SHEET"),
		DatasetSource:  strings.ToLower(getEnv("DATASET_SOURCE", SourceFile)),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		PostgresTable:  getEnv("POSTGRES_TABLE", "initiatives"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		PreviewRows:    10,
	}

	if v := os.Getenv("PREVIEW_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PREVIEW_ROWS: %w", err)
		}
		cfg.PreviewRows = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.DatasetSource {
	case SourceFile:
		if c.DatasetPath == "" {
			return errors.New("DATASET_PATH is required for the file source")
		}
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.DatasetSource)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("PREVIEW_ROWS must not be negative, got %d", c.PreviewRows)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
