package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
# comment line
database:
  host: db.internal
  port: 5433
  user: app
  password: secret
  database: rides

rabbitmq:
  enabled: true
  host: mq.internal

http:
  port: 8088

auth:
  jwt_secret: topsecret
  token_ttl_minutes: 120
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.Port != "5433" {
		t.Errorf("database section mismatch: %+v", cfg.Database)
	}
	if !cfg.RabbitMQ.Enabled || cfg.RabbitMQ.Host != "mq.internal" {
		t.Errorf("rabbitmq section mismatch: %+v", cfg.RabbitMQ)
	}
	if cfg.HTTP.Port != "8088" {
		t.Errorf("http port = %q, want 8088", cfg.HTTP.Port)
	}
	if cfg.Auth.JWTSecret != "topsecret" || cfg.Auth.TokenTTLMinutes != 120 {
		t.Errorf("auth section mismatch: %+v", cfg.Auth)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "from-env")

	path := writeConfig(t, `
database:
  host: ${TEST_DB_HOST:-fallback}
  port: ${TEST_DB_PORT:-6000}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Host != "from-env" {
		t.Errorf("host = %q, want env value", cfg.Database.Host)
	}
	if cfg.Database.Port != "6000" {
		t.Errorf("port = %q, want default 6000", cfg.Database.Port)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "database:\n  host: x\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.HTTP.Port != "3000" {
		t.Errorf("default http port = %q, want 3000", cfg.HTTP.Port)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("default ttl = %d, want 60", cfg.Auth.TokenTTLMinutes)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
