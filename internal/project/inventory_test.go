package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".tatamicut" {
		t.Errorf("expected parent dir .tatamicut, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_inventory.json")

	inv := model.Inventory{
		Joists:             []model.JoistSize{model.NewJoistSize("Test joist", 30, 40)},
		PlywoodThicknesses: []float64{12},
		Stocks:             []model.StockPreset{model.NewStockPresetWithPrice("Test stock", 3640, 980)},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Joists) != 1 || loaded.Joists[0].Name != "Test joist" {
		t.Errorf("unexpected joists %+v", loaded.Joists)
	}
	if loaded.Joists[0].Height != 40 {
		t.Errorf("expected height 40, got %f", loaded.Joists[0].Height)
	}
	if len(loaded.Stocks) != 1 || loaded.Stocks[0].PricePerUnit != 980 {
		t.Errorf("unexpected stocks %+v", loaded.Stocks)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Joists) == 0 {
		t.Error("expected default joists")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected default inventory file to be saved")
	}
}

func TestImportInventoryMerges(t *testing.T) {
	existing := model.DefaultInventory()
	extra := model.Inventory{
		Joists:             []model.JoistSize{existing.Joists[0], model.NewJoistSize("Imported", 24, 48)},
		PlywoodThicknesses: []float64{12, 28},
		Stocks:             []model.StockPreset{model.NewStockPreset("5m", 5000)},
	}
	data, err := json.Marshal(extra)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Joists) != len(existing.Joists)+1 {
		t.Errorf("expected one new joist, got %d total", len(merged.Joists))
	}
	if len(merged.PlywoodThicknesses) != len(existing.PlywoodThicknesses)+1 {
		t.Errorf("expected one new thickness, got %v", merged.PlywoodThicknesses)
	}
	if merged.FindStockByLength(5000) == nil {
		t.Error("expected imported 5m stock")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Joists) != len(existing.Joists) {
		t.Error("existing inventory should be returned unchanged")
	}
}
