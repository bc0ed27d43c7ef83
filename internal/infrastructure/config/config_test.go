package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/goaccounts/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.RollupConcurrency != 8 {
		t.Fatalf("expected default rollup concurrency 8, got %d", cfg.RollupConcurrency)
	}

	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Fatalf("expected default kafka broker, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STATEMENT_TOPIC", "statements")
	t.Setenv("ROLLUP_CONCURRENCY", "16")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("expected two kafka brokers, got %v", cfg.KafkaBrokers)
	}

	if cfg.StatementTopic != "statements" || cfg.RollupConcurrency != 16 {
		t.Fatalf("expected statement overrides, got topic=%s concurrency=%d", cfg.StatementTopic, cfg.RollupConcurrency)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "HTTP_PORT=7070\nSTATEMENT_TOPIC=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	t.Setenv("HTTP_PORT", "9191")
	// Make sure the variable is restored after godotenv sets it.
	t.Setenv("STATEMENT_TOPIC", "")
	os.Unsetenv("STATEMENT_TOPIC")

	cfg, err := config.LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "9191" {
		t.Fatalf("expected environment to win over dotenv, got %s", cfg.HTTPPort)
	}

	if cfg.StatementTopic != "from-file" {
		t.Fatalf("expected topic from dotenv, got %s", cfg.StatementTopic)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	if _, err := config.LoadFiles(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.LoadFiles(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidConcurrency(t *testing.T) {
	t.Setenv("ROLLUP_CONCURRENCY", "0")

	if _, err := config.LoadFiles(); err == nil {
		t.Fatalf("expected error for zero rollup concurrency")
	}
}
