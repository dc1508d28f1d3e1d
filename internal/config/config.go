// Package config loads the reviewd configuration from YAML, merging it
// over defaults so a partial file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all reviewd configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Store   StoreConfig   `yaml:"store"`
	Export  ExportConfig  `yaml:"export"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// BackendConfig points at the reporting system the engine pulls versions
// and diffs from.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StoreConfig holds review-run persistence settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds export backend settings.
type ExportConfig struct {
	// Backend selects the export renderer: "html" or "pdf".
	Backend string `yaml:"backend"`
	// PDFTimeoutSeconds bounds a single headless-browser print.
	PDFTimeoutSeconds int `yaml:"pdf_timeout_seconds"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:9090",
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Path: "data",
		},
		Export: ExportConfig{
			Backend:           "html",
			PDFTimeoutSeconds: 60,
		},
	}
}

// Load reads config from path, merging over defaults. A missing file is
// not an error; defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Merge(loaded, DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge merges loaded config with defaults. Values from loaded take
// precedence; zero values fall back.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Server.Addr = pickString(loaded.Server.Addr, defaults.Server.Addr)
	result.Backend.BaseURL = pickString(loaded.Backend.BaseURL, defaults.Backend.BaseURL)
	result.Backend.TimeoutSeconds = pickInt(loaded.Backend.TimeoutSeconds, defaults.Backend.TimeoutSeconds)
	result.Store.Path = pickString(loaded.Store.Path, defaults.Store.Path)
	result.Export.Backend = pickString(loaded.Export.Backend, defaults.Export.Backend)
	result.Export.PDFTimeoutSeconds = pickInt(loaded.Export.PDFTimeoutSeconds, defaults.Export.PDFTimeoutSeconds)

	return result
}

// Validate checks the merged config for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("%w: backend.base_url must be set", ErrInvalidConfig)
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: backend.timeout_seconds must be positive", ErrInvalidConfig)
	}
	if !IsValidExportBackend(c.Export.Backend) {
		return fmt.Errorf("%w: export.backend must be html or pdf, got %q", ErrInvalidConfig, c.Export.Backend)
	}
	return nil
}

// IsValidExportBackend reports whether name is a supported export backend.
func IsValidExportBackend(name string) bool {
	switch name {
	case "html", "pdf":
		return true
	}
	return false
}

func pickString(loaded, fallback string) string {
	if loaded != "" {
		return loaded
	}
	return fallback
}

func pickInt(loaded, fallback int) int {
	if loaded != 0 {
		return loaded
	}
	return fallback
}
