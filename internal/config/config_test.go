package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Backend.TimeoutSeconds != 30 {
		t.Errorf("backend timeout = %d, want 30", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Export.Backend != "html" {
		t.Errorf("export backend = %q, want html", cfg.Export.Backend)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected defaults, got addr %q", cfg.Server.Addr)
	}
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "backend:\n  base_url: http://reports.internal:9000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://reports.internal:9000" {
		t.Errorf("base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 30 {
		t.Errorf("timeout should fall back to default, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Export.Backend != "html" {
		t.Errorf("export backend should fall back to default, got %q", cfg.Export.Backend)
	}
}

func TestLoadRejectsBadExportBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "export:\n  backend: docx\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestIsValidExportBackend(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"html", true},
		{"pdf", true},
		{"docx", false},
		{"", false},
		{"PDF", false},
	}
	for _, tt := range tests {
		if got := IsValidExportBackend(tt.name); got != tt.valid {
			t.Errorf("IsValidExportBackend(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
