package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoomSpec is the inside of the tatami frame.
type RoomSpec struct {
	Width float64 `toml:"width" json:"width"` // Across the joists
	Depth float64 `toml:"depth" json:"depth"` // Along the joists
}

// JoistSpec describes the joists and the stock they are cut from.
type JoistSpec struct {
	Name           string    `toml:"name,omitempty" json:"name,omitempty"`
	Width          float64   `toml:"width" json:"width"`
	Height         float64   `toml:"height" json:"height"`
	OnSide         bool      `toml:"on_side" json:"on_side"`
	StockLength    float64   `toml:"stock_length" json:"stock_length"`
	Spacing        float64   `toml:"spacing" json:"spacing"`
	EcoMode        bool      `toml:"eco_mode" json:"eco_mode"`
	CompareLengths []float64 `toml:"compare_lengths,omitempty" json:"compare_lengths,omitempty"`
}

// Size returns the joist cross-section as laid, rotated when on its side.
func (s JoistSpec) Size() JoistSize {
	size := JoistSize{Name: s.Name, Width: s.Width, Height: s.Height}
	if s.OnSide {
		return size.Rotated()
	}
	return size
}

// SheetSpec is a sheet or board size.
type SheetSpec struct {
	Width  float64 `toml:"width" json:"width"`
	Length float64 `toml:"length" json:"length"`
}

// HeightSpec holds the inputs of the height stack search.
type HeightSpec struct {
	Tatami             float64   `toml:"tatami" json:"tatami"`
	Flooring           float64   `toml:"flooring" json:"flooring"`
	PlywoodThicknesses []float64 `toml:"plywood_thicknesses,omitempty" json:"plywood_thicknesses,omitempty"`
}

// Job is a saved description of one tatami floor.
type Job struct {
	ID         string     `toml:"id" json:"id"`
	Name       string     `toml:"name" json:"name"`
	CreatedAt  time.Time  `toml:"created_at" json:"created_at"`
	Room       RoomSpec   `toml:"room" json:"room"`
	Joist      JoistSpec  `toml:"joist" json:"joist"`
	Plywood    SheetSpec  `toml:"plywood" json:"plywood"`
	Insulation SheetSpec  `toml:"insulation" json:"insulation"`
	Height     HeightSpec `toml:"height" json:"height"`
}

// NewJob creates a job with a generated ID and the given config defaults.
func NewJob(name string, cfg AppConfig) Job {
	j := Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	cfg.ApplyToJob(&j)
	return j
}

// Validate reports the first field that cannot be used for a calculation.
func (j Job) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"room.width", j.Room.Width},
		{"room.depth", j.Room.Depth},
		{"joist.width", j.Joist.Width},
		{"joist.height", j.Joist.Height},
		{"joist.stock_length", j.Joist.StockLength},
		{"joist.spacing", j.Joist.Spacing},
	}
	for _, c := range checks {
		if !positive(c.value) {
			return fmt.Errorf("%s must be a positive number, got %g", c.field, c.value)
		}
	}
	if j.Joist.Size().Width*2 > j.Room.Width {
		return fmt.Errorf("room.width %g is narrower than two joists", j.Room.Width)
	}
	for i, l := range j.Joist.CompareLengths {
		if !positive(l) {
			return fmt.Errorf("joist.compare_lengths[%d] must be a positive number, got %g", i, l)
		}
	}
	return nil
}

// Framing returns the joist layout for the room.
func (j Job) Framing() FramingLayout {
	return CalculateFraming(j.Room.Width, j.Room.Depth, j.Joist.Size().Width, j.Joist.Spacing)
}

// Board returns the insulation board size, falling back to the standard board.
func (j Job) Board() BoardSize {
	if positive(j.Insulation.Width) && positive(j.Insulation.Length) {
		return BoardSize{Width: j.Insulation.Width, Length: j.Insulation.Length}
	}
	return DefaultBoardSize
}
