package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"orgindex/internal/org"
)

// Vault is a named directory of org files.
type Vault struct {
	Name string
	Path string
}

// Config holds all configuration for the application.
type Config struct {
	Vaults          []Vault
	DBPath          string
	APIPort         string
	TodoKeywords    []string
	DoneKeywords    []string
	ExcludePatterns []string
	Watch           bool
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "./data/orgindex.db"),
		APIPort:         getEnv("API_PORT", "9000"),
		TodoKeywords:    getListEnv("TODO_KEYWORDS", []string{"TODO"}),
		DoneKeywords:    getListEnv("DONE_KEYWORDS", []string{"DONE"}),
		ExcludePatterns: getListEnv("EXCLUDE_PATTERNS", []string{"**/.git/**"}),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	cfg.Vaults, err = parseVaults(getEnv("VAULT_PATHS", ""))
	if err != nil {
		return nil, err
	}
	if len(cfg.Vaults) == 0 {
		return nil, fmt.Errorf("VAULT_PATHS is required")
	}

	cfg.Watch, err = strconv.ParseBool(getEnv("WATCH", "false"))
	if err != nil {
		return nil, fmt.Errorf("WATCH must be a boolean: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// ParseConfig returns the keyword vocabulary used for parsing headlines.
func (c *Config) ParseConfig() org.ParseConfig {
	return org.ParseConfig{
		TodoKeywords: c.TodoKeywords,
		DoneKeywords: c.DoneKeywords,
	}
}

// parseVaults parses comma-separated "name=path" entries. A bare path is
// named after its last element.
func parseVaults(value string) ([]Vault, error) {
	var vaults []Vault
	seen := make(map[string]bool)
	for _, entry := range splitList(value) {
		name, path, ok := strings.Cut(entry, "=")
		if !ok {
			path = entry
			name = filepath.Base(filepath.Clean(entry))
		}
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if name == "" || path == "" {
			return nil, fmt.Errorf("VAULT_PATHS entry %q is invalid", entry)
		}
		if seen[name] {
			return nil, fmt.Errorf("VAULT_PATHS has duplicate vault name %q", name)
		}
		seen[name] = true
		vaults = append(vaults, Vault{Name: name, Path: path})
	}
	return vaults, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getListEnv reads a comma-separated list. Unlike getEnv, a variable that is
// set but empty yields an empty list rather than the default.
func getListEnv(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return splitList(value)
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
