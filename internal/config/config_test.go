package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_DSN", "APP_ENV", "MIGRATIONS", "DB_SEED", "DB_DEBUG"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DatabaseDSN != "glassfab.db" || cfg.Env != "development" {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Migrations || cfg.Seed || cfg.DBDebug {
		t.Fatalf("expected all toggles off by default, got %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db/oms")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MIGRATIONS", "1")
	t.Setenv("DB_SEED", "true")
	t.Setenv("DB_DEBUG", "")
	cfg := Load()
	if cfg.Port != "9090" || cfg.DatabaseDSN != "postgres://u:p@db/oms" || cfg.Env != "production" {
		t.Fatalf("got %+v", cfg)
	}
	if !cfg.Migrations || !cfg.Seed || cfg.DBDebug {
		t.Fatalf("got %+v", cfg)
	}
}

func TestParseBool(t *testing.T) {
	t.Setenv("FLAG", "true")
	if !ParseBool("FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("FLAG", "banana")
	if ParseBool("FLAG", false) {
		t.Fatal("expected default on bad value")
	}
	t.Setenv("FLAG", "")
	if !ParseBool("FLAG", true) {
		t.Fatal("expected default when unset")
	}
}
