package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected default PG host localhost, got %s", cfg.Database.Host)
	}
	if cfg.ETL.FileDelay != time.Second {
		t.Errorf("Expected default file delay 1s, got %s", cfg.ETL.FileDelay)
	}
	if cfg.ETL.Workers != 2 {
		t.Errorf("Expected default 2 workers, got %d", cfg.ETL.Workers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ETL_FILE_DELAY_MS", "250")
	t.Setenv("ETL_WORKERS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected port 8081, got %s", cfg.Port)
	}
	if cfg.ETL.FileDelay != 250*time.Millisecond {
		t.Errorf("Expected file delay 250ms, got %s", cfg.ETL.FileDelay)
	}
	// Unparseable values fall back to the default
	if cfg.ETL.Workers != 2 {
		t.Errorf("Expected fallback to 2 workers, got %d", cfg.ETL.Workers)
	}
}
