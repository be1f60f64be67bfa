package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "RSA_KEY_BITS", "METRICS_ADDR", "SCENARIO_FILE", "REQUIRE_EDGE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, identity.DefaultRSABits, cfg.RSAKeyBits)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.ScenarioFile)
	assert.False(t, cfg.RequireEdge)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RSA_KEY_BITS", "3072")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("SCENARIO_FILE", "graph.yaml")
	t.Setenv("REQUIRE_EDGE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3072, cfg.RSAKeyBits)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "graph.yaml", cfg.ScenarioFile)
	assert.True(t, cfg.RequireEdge)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bits not a number": {"RSA_KEY_BITS": "lots"},
		"bits too small":    {"RSA_KEY_BITS": "512"},
		"unknown level":     {"LOG_LEVEL": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoggerJSON(t *testing.T) {
	cfg := &Config{Env: "production", LogLevel: "warn"}
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("kind", "signed").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"kind":"signed"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestLoggerConsole(t *testing.T) {
	cfg := &Config{Env: "development", LogLevel: "info"}
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}
