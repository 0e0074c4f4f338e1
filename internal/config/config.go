// Package config loads configuration from the environment, with an optional
// .env file for development.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings for both binaries. The CLI reads BlobURL and DBPath;
// blobd reads the Blobd section.
type Config struct {
	// BlobURL is the base URL of the blob service the CLI talks to.
	BlobURL string
	// DBPath is the CLI's local database (recent-items index).
	DBPath string

	Blobd BlobdConfig
}

// BlobdConfig configures the self-hostable blob server.
type BlobdConfig struct {
	Port    int
	DBPath  string
	BaseURL string // externally visible address; defaults to localhost:{port}
}

// Load reads the environment. A missing .env file is fine — environment
// variables alone are enough.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BlobURL: getEnv("SNIPSHARE_BLOB_URL", "https://blobse.us.to"),
		DBPath:  getEnv("SNIPSHARE_DB_PATH", filepath.Join(configDir(), "recent.db")),

		Blobd: BlobdConfig{
			Port:    getEnvInt("BLOBD_PORT", 8080),
			DBPath:  getEnv("BLOBD_DB_PATH", "data/blobd.db"),
			BaseURL: getEnv("BLOBD_BASE_URL", ""),
		},
	}
}

// configDir is ~/.config/snipshare, honouring XDG_CONFIG_HOME.
func configDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "snipshare")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "snipshare"
	}
	return filepath.Join(home, ".config", "snipshare")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
