package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTatamiHeight = 60
	cfg.Color = "always"
	inv := model.DefaultInventory()

	if err := ExportAllData(path, cfg, inv); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultTatamiHeight != 60 {
		t.Errorf("expected DefaultTatamiHeight=60, got %f", backup.Config.DefaultTatamiHeight)
	}
	if backup.Config.Color != "always" {
		t.Errorf("expected Color=always, got %s", backup.Config.Color)
	}
	if len(backup.Inventory.Joists) != len(inv.Joists) {
		t.Errorf("expected %d joists, got %d", len(inv.Joists), len(backup.Inventory.Joists))
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"color":"never"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.Inventory{}); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilRecentJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_jobs":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentJobs == nil {
		t.Error("RecentJobs should not be nil after import")
	}
	if backup.Config.DefaultStockLength != 1820 {
		t.Errorf("missing config fields should keep defaults, got %f", backup.Config.DefaultStockLength)
	}
}
