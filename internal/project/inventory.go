package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.tatamicut/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs and thicknesses are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends entries of imported whose IDs are not in existing.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	// Build sets of existing IDs for deduplication
	joistIDs := make(map[string]bool, len(existing.Joists))
	for _, j := range existing.Joists {
		joistIDs[j.ID] = true
	}
	stockIDs := make(map[string]bool, len(existing.Stocks))
	for _, s := range existing.Stocks {
		stockIDs[s.ID] = true
	}

	for _, j := range imported.Joists {
		if !joistIDs[j.ID] {
			existing.Joists = append(existing.Joists, j)
			joistIDs[j.ID] = true
		}
	}
	for _, s := range imported.Stocks {
		if !stockIDs[s.ID] {
			existing.Stocks = append(existing.Stocks, s)
			stockIDs[s.ID] = true
		}
	}
	for _, th := range imported.PlywoodThicknesses {
		if !containsLength(existing.PlywoodThicknesses, th) {
			existing.PlywoodThicknesses = append(existing.PlywoodThicknesses, th)
		}
	}
	return existing
}

func containsLength(list []float64, v float64) bool {
	for _, l := range list {
		if model.SameLength(l, v) {
			return true
		}
	}
	return false
}
