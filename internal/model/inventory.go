package model

import (
	"fmt"

	"github.com/google/uuid"
)

// StockPreset represents a reusable joist stock length.
type StockPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Length       float64 `json:"length"`
	PricePerUnit float64 `json:"price_per_unit,omitempty"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length float64) StockPreset {
	return NewStockPresetWithPrice(name, length, 0)
}

// NewStockPresetWithPrice creates a new StockPreset with a generated ID and unit price.
func NewStockPresetWithPrice(name string, length, price float64) StockPreset {
	return StockPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Length:       length,
		PricePerUnit: price,
	}
}

// Cost returns the price of buying units of this stock.
func (sp StockPreset) Cost(units int) float64 {
	return sp.PricePerUnit * float64(units)
}

// Inventory holds the user's saved joist sizes, plywood thicknesses and stock lengths.
type Inventory struct {
	Joists             []JoistSize   `json:"joists"`
	PlywoodThicknesses []float64     `json:"plywood_thicknesses"`
	Stocks             []StockPreset `json:"stocks"`
}

// DefaultInventory returns an inventory populated with common Japanese lumber sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Joists: []JoistSize{
			NewJoistSize("Furring strip", 15, 45),
			NewJoistSize("Joist 30x40", 30, 40),
			NewJoistSize("Joist 36x45", 36, 45),
			NewJoistSize("Sanwari", 30, 60),
			NewJoistSize("Shiwari", 45, 45),
		},
		PlywoodThicknesses: []float64{9, 12, 15, 24},
		Stocks: []StockPreset{
			NewStockPreset("6 shaku (1820mm)", 1820),
			NewStockPreset("3m (3000mm)", 3000),
			NewStockPreset("12 shaku (3640mm)", 3640),
			NewStockPreset("4m (4000mm)", 4000),
		},
	}
}

// FindJoistByID returns a pointer to the joist size with the given ID, or nil.
func (inv *Inventory) FindJoistByID(id string) *JoistSize {
	for i := range inv.Joists {
		if inv.Joists[i].ID == id {
			return &inv.Joists[i]
		}
	}
	return nil
}

// FindJoistByName returns a pointer to the first joist size with the given name, or nil.
func (inv *Inventory) FindJoistByName(name string) *JoistSize {
	for i := range inv.Joists {
		if inv.Joists[i].Name == name {
			return &inv.Joists[i]
		}
	}
	return nil
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByLength returns the first stock preset of the given length, or nil.
func (inv *Inventory) FindStockByLength(length float64) *StockPreset {
	for i := range inv.Stocks {
		if SameLength(inv.Stocks[i].Length, length) {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockLengths returns the stock lengths in inventory order.
func (inv *Inventory) StockLengths() []float64 {
	lengths := make([]float64, len(inv.Stocks))
	for i, s := range inv.Stocks {
		lengths[i] = s.Length
	}
	return lengths
}

// AddJoists appends joist sizes not already present by cross-section and name.
// Returns the number added.
func (inv *Inventory) AddJoists(sizes []JoistSize) int {
	added := 0
	for _, s := range sizes {
		if inv.hasJoist(s) {
			continue
		}
		if s.ID == "" {
			s.ID = uuid.New().String()[:8]
		}
		inv.Joists = append(inv.Joists, s)
		added++
	}
	return added
}

func (inv *Inventory) hasJoist(s JoistSize) bool {
	for _, j := range inv.Joists {
		if j.Name == s.Name && SameLength(j.Width, s.Width) && SameLength(j.Height, s.Height) {
			return true
		}
	}
	return false
}

// JoistNames returns a list of joist labels for listings.
func (inv *Inventory) JoistNames() []string {
	names := make([]string, len(inv.Joists))
	for i, j := range inv.Joists {
		names[i] = j.Label()
	}
	return names
}

// Describe returns a one-line summary of the inventory.
func (inv *Inventory) Describe() string {
	return fmt.Sprintf("%d joist sizes, %d plywood thicknesses, %d stock lengths",
		len(inv.Joists), len(inv.PlywoodThicknesses), len(inv.Stocks))
}
