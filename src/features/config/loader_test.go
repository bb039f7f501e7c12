package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	manager, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := manager.Get()
	if cfg.Index.Path != "./rescue_index.json" {
		t.Errorf("expected default index path, got %q", cfg.Index.Path)
	}
	if cfg.Server.Port != 3535 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "scan:\n  work_dir: /srv/music\n  ascii_paths: true\nlogger:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := manager.Get()
	if cfg.Scan.WorkDir != "/srv/music" || !cfg.Scan.ASCIIPaths {
		t.Errorf("unexpected scan config: %+v", cfg.Scan)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logger.Level)
	}
	if cfg.Database.Path != "./catalog.db" {
		t.Errorf("expected default database path, got %q", cfg.Database.Path)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "metrics:\n  enabled: true\nlogger:\n  format: xml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("expected an error when the file already exists")
	}

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected written defaults to load, got %v", err)
	}
	if manager.Get().Watch.DebounceMS != 5000 {
		t.Errorf("expected default debounce, got %d", manager.Get().Watch.DebounceMS)
	}
	if !strings.Contains(manager.GetYAML(), "index:") {
		t.Error("expected YAML dump to contain the index section")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MUSICRESCUE_WORK_DIR", "/mnt/old-disk")
	t.Setenv("MUSICRESCUE_INDEX", "/tmp/index.yaml")

	manager, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := manager.Get()
	if cfg.Scan.WorkDir != "/mnt/old-disk" || cfg.Index.Path != "/tmp/index.yaml" {
		t.Errorf("expected environment overrides, got scan=%+v index=%+v", cfg.Scan, cfg.Index)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected an empty file to load, got %v", err)
	}
	if manager.Get().Server.Port != 3535 {
		t.Errorf("expected default port, got %d", manager.Get().Server.Port)
	}
}
