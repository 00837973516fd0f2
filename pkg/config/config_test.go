package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd to be true")
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Fatalf("unexpected store backend %q", cfg.Store.Backend)
	}
	if got := cfg.Pricing.TaxRate.String(); got != "0.18" {
		t.Fatalf("expected default tax rate 0.18, got %s", got)
	}
	if cfg.Pricing.Currency != "PEN" {
		t.Fatalf("unexpected currency %q", cfg.Pricing.Currency)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreBackend, "mongodb")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown store backend to return an error")
	}
}

func TestLoad_RejectsNegativeTaxRate(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvTaxRate, "-0.05")

	if _, err := Load(); err == nil {
		t.Fatal("expected negative tax rate to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvStoreBackend, "memory")
}
