package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

// Config holds all configuration for the application.
type Config struct {
	Env      string
	LogLevel string

	// Key generation
	RSAKeyBits int

	// Ops endpoint; empty disables it
	MetricsAddr string

	// Scenario to run; empty runs the built-in Alice/Bob graph
	ScenarioFile string

	// Reject delivery between unconnected identities
	RequireEdge bool
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		ScenarioFile: os.Getenv("SCENARIO_FILE"),
		RequireEdge:  getEnv("REQUIRE_EDGE", "false") == "true",
	}

	bits, err := strconv.Atoi(getEnv("RSA_KEY_BITS", strconv.Itoa(identity.DefaultRSABits)))
	if err != nil {
		return nil, fmt.Errorf("RSA_KEY_BITS: %w", err)
	}
	// below 1024 OAEP-SHA256 cannot carry a useful payload
	if bits < 1024 {
		return nil, fmt.Errorf("RSA_KEY_BITS must be at least 1024, got %d", bits)
	}
	cfg.RSAKeyBits = bits

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Logger builds the process logger: console output in development, JSON otherwise.
func (c *Config) Logger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if c.IsDevelopment() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
