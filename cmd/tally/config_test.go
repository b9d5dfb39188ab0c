package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Backend != "file" {
		t.Fatalf("default backend = %q, want %q", cfg.Backend, "file")
	}
	if cfg.DataDir == "" {
		t.Fatal("default data dir should not be empty")
	}
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := writeConfig(t, "data_dir: /tmp/calc\nbackend: bolt\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.DataDir != "/tmp/calc" {
		t.Fatalf("data dir = %q, want %q", cfg.DataDir, "/tmp/calc")
	}
	if cfg.Backend != "bolt" {
		t.Fatalf("backend = %q, want %q", cfg.Backend, "bolt")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend: file\n")
	t.Setenv("TALLY_BACKEND", "bolt")
	t.Setenv("TALLY_DATA_DIR", "/tmp/elsewhere")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Backend != "bolt" {
		t.Fatalf("backend = %q, want env override %q", cfg.Backend, "bolt")
	}
	if cfg.DataDir != "/tmp/elsewhere" {
		t.Fatalf("data dir = %q, want env override %q", cfg.DataDir, "/tmp/elsewhere")
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "backend: redis\n")

	if _, err := loadConfig(path); err == nil {
		t.Fatal("loadConfig should reject an unknown backend")
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "backend: [unclosed\n")

	if _, err := loadConfig(path); err == nil {
		t.Fatal("loadConfig should reject malformed YAML")
	}
}

// writeConfig writes a throwaway config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
