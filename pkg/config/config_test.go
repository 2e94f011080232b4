package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://u:p@localhost:5432/app"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if cfg.DSN != "postgres://u:p@localhost:5432/app" {
		t.Fatalf("dsn was rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyFields(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5432,
		LegacyUser:     "silver",
		LegacyPassword: "secret",
		LegacyName:     "empire",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	for _, want := range []string{"postgres://", "silver", "db.internal:5432", "/empire", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("dsn %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNRejectsIncompleteLegacyFields(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	if err := cfg.ensureDSN(); err == nil {
		t.Fatal("expected error when user and name are missing")
	}
}

func TestAppConfigEnvPredicates(t *testing.T) {
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatal("expected case-insensitive dev match")
	}
	if (AppConfig{Env: "dev"}).IsProd() {
		t.Fatal("dev must not report prod")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatal("expected prod match")
	}
}
