// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	AppEnv       string
	DatabaseURL  string
	KafkaBrokers []string

	// LedgerWriteEnabled is the operator-controlled write gate. When false
	// the writer refuses all ledger writes and records audit events instead.
	LedgerWriteEnabled bool
}

var truthy = regexp.MustCompile(`^(?i)(true|1)$`)

// Load reads the environment. A missing .env file is not an error; real
// deployments set variables directly.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		AppEnv:             getenv("APP_ENV", "development"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		LedgerWriteEnabled: truthy.MatchString(getenv("LEDGER_WRITE_ENABLED", "true")),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
