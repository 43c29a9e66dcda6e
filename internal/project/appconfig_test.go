package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultStockLength = 3640
	cfg.Color = "never"
	cfg.EcoMode = true
	cfg.RecentJobs = []string{"/tmp/living.toml", "/tmp/study.toml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultStockLength != 3640 {
		t.Errorf("expected DefaultStockLength=3640, got %f", loaded.DefaultStockLength)
	}
	if loaded.Color != "never" {
		t.Errorf("expected Color=never, got %s", loaded.Color)
	}
	if !loaded.EcoMode {
		t.Error("expected EcoMode=true")
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultSpacing != defaults.DefaultSpacing {
		t.Errorf("expected default spacing %f, got %f", defaults.DefaultSpacing, cfg.DefaultSpacing)
	}
	if cfg.Color != "auto" {
		t.Errorf("expected color=auto, got %s", cfg.Color)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_spacing": 455}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultSpacing != 455 {
		t.Errorf("expected spacing 455, got %f", cfg.DefaultSpacing)
	}
	if cfg.DefaultStockLength != 1820 {
		t.Errorf("expected default stock length to survive, got %f", cfg.DefaultStockLength)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".tatamicut" {
		t.Errorf("expected parent dir .tatamicut, got %s", filepath.Dir(path))
	}
}
