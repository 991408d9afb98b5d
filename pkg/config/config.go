package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Catalog CatalogConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Logger  LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type CatalogConfig struct {
	// Source is either an http(s) URL or a local file path.
	Source  string
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	// Path is the SQLite database file backing the key-value store.
	Path string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// Missing .env is fine; plain environment variables still apply.

	catalogTimeout, _ := strconv.Atoi(getEnv("CATALOG_TIMEOUT", "15"))
	geminiTimeout, _ := strconv.Atoi(getEnv("GEMINI_TIMEOUT", "60"))

	return &Config{
		Catalog: CatalogConfig{
			Source:  getEnv("CATALOG_SOURCE", "data/catalog.json"),
			Timeout: time.Duration(catalogTimeout) * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout: time.Duration(geminiTimeout) * time.Second,
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "data/tenders.db"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
