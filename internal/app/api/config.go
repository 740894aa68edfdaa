package api

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings for the storefront API. Values come
// from the environment, with a .env file loaded first for local development.
type Config struct {
	Port string

	// CatalogDSN points at the menu catalog database. Empty falls back to
	// the in-memory catalog.
	CatalogDSN string
	// LedgerDSN points at the order ledger database. Empty falls back to
	// the in-memory ledger.
	LedgerDSN string
	// LedgerRetryInterval paces background reconnect attempts while the
	// ledger is unreachable.
	LedgerRetryInterval time.Duration

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	RabbitURL string

	// FreeStatusTransitions lifts the strict pending-only transition rule,
	// matching the unrestricted behavior of the original storefront.
	FreeStatusTransitions bool
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	retry := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("ORDER_LEDGER_RETRY_INTERVAL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			retry = parsed
		}
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		CatalogDSN:            os.Getenv("CATALOG_DSN"),
		LedgerDSN:             os.Getenv("ORDER_LEDGER_DSN"),
		LedgerRetryInterval:   retry,
		TemporalAddress:       os.Getenv("TEMPORAL_ADDRESS"),
		TemporalNamespace:     os.Getenv("TEMPORAL_NAMESPACE"),
		TemporalDisabled:      os.Getenv("TEMPORAL_DISABLED") == "1",
		RabbitURL:             os.Getenv("RABBITMQ_URL"),
		FreeStatusTransitions: os.Getenv("ORDER_STATUS_FREE_TRANSITIONS") == "1",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
