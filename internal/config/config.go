package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by all commands
type Config struct {
	ProjectID       string `env:"GCP_PROJECT_ID"`
	DatabaseID      string `env:"FIRESTORE_DATABASE_ID" envDefault:"(default)"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS" envDefault:"dbkey.json"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Collection scanned by sync-photo-urls when -collection is not given
	PhotoSyncCollection string `env:"PHOTO_SYNC_COLLECTION"`
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
