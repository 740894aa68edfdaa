package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := newLogger("storefront-test")
	require.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := newLogger("storefront-test")
	require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	require.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	logger := newLogger("storefront-test")
	require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestLookupEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "   ")
	require.Equal(t, "local", lookupEnv("ENVIRONMENT", "local"))

	t.Setenv("ENVIRONMENT", "staging")
	require.Equal(t, "staging", lookupEnv("ENVIRONMENT", "local"))
}
