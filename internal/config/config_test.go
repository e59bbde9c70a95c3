package config

import (
	"testing"
	"time"
)

func TestLoadRequiredAndDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/carelink?sslmode=disable")
	t.Setenv("SIGNING_KEY", "test-signing-key")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://app:secret@db:5432/carelink?sslmode=disable" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SigningKey != "test-signing-key" {
		t.Fatalf("SigningKey = %q", cfg.SigningKey)
	}
	if cfg.Addr != ":3000" {
		t.Fatalf("Addr default = %q", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL default = %v", cfg.TokenTTL)
	}
	if cfg.WSPingInterval != 30*time.Second {
		t.Fatalf("WSPingInterval default = %v", cfg.WSPingInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/carelink")
	t.Setenv("SIGNING_KEY", "k")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "42")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()

	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.GlobalLimit != 42 {
		t.Fatalf("GlobalLimit = %d, want 42", cfg.GlobalLimit)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}
