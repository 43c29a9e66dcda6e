package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// JoistSize is a lumber cross-section available for joists.
type JoistSize struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

// NewJoistSize creates a JoistSize with a generated ID.
func NewJoistSize(name string, width, height float64) JoistSize {
	return JoistSize{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// Label returns the display name including the cross-section.
func (j JoistSize) Label() string {
	if j.Name == "" {
		return fmt.Sprintf("Joist %gx%gmm", j.Width, j.Height)
	}
	return fmt.Sprintf("%s (%gx%gmm)", j.Name, j.Width, j.Height)
}

// Rotated returns the size laid on its side.
func (j JoistSize) Rotated() JoistSize {
	j.Width, j.Height = j.Height, j.Width
	return j
}

// FramingLayout is the placement of joist columns across the room width.
type FramingLayout struct {
	RoomWidth        float64 `json:"room_width"`
	RoomDepth        float64 `json:"room_depth"`
	JoistWidth       float64 `json:"joist_width"`
	Spacing          float64 `json:"spacing"`
	Columns          int     `json:"columns"`            // Joists across the width, both edges included
	StandardBays     int     `json:"standard_bays"`      // Bays exactly Spacing wide
	LastBayWidth     float64 `json:"last_bay_width"`     // Narrower bay left over at the end, 0 when none
	TotalJoistLength float64 `json:"total_joist_length"` // Columns * RoomDepth
}

// IsZero reports whether no layout could be computed.
func (f FramingLayout) IsZero() bool {
	return f.Columns == 0
}

// CalculateFraming places a joist at each edge of the room, then adds a joist and a
// bay while both still fit. Whatever width is left becomes the last bay.
// Invalid or too narrow input returns a zero layout.
func CalculateFraming(roomWidth, roomDepth, joistWidth, spacing float64) FramingLayout {
	if !positive(roomWidth) || !positive(roomDepth) || !positive(joistWidth) || !positive(spacing) {
		return FramingLayout{}
	}
	remaining := roomWidth - joistWidth*2
	if remaining < 0 {
		return FramingLayout{}
	}

	f := FramingLayout{
		RoomWidth:  roomWidth,
		RoomDepth:  roomDepth,
		JoistWidth: joistWidth,
		Spacing:    spacing,
		Columns:    2,
	}
	for remaining >= joistWidth+spacing {
		remaining -= joistWidth + spacing
		f.Columns++
		f.StandardBays++
	}
	switch {
	case SameLength(remaining, spacing):
		f.StandardBays++
	case remaining > 0:
		f.LastBayWidth = remaining
	}
	f.TotalJoistLength = float64(f.Columns) * roomDepth
	return f
}

// HeightStack is one joist orientation plus plywood plus flooring reaching the tatami height.
type HeightStack struct {
	Joist     JoistSize `json:"joist"`
	OnSide    bool      `json:"on_side"`    // Joist laid flat, its width becomes the height
	JoistRise float64   `json:"joist_rise"` // Height contributed by the joist
	Plywood   float64   `json:"plywood"`
	Flooring  float64   `json:"flooring"`
	Total     float64   `json:"total"`
}

// Orientation returns "upright" or "on side".
func (h HeightStack) Orientation() string {
	if h.OnSide {
		return "on side"
	}
	return "upright"
}

// FramingJoistWidth returns the width the joist occupies across the room in this orientation.
func (h HeightStack) FramingJoistWidth() float64 {
	if h.OnSide {
		return h.Joist.Height
	}
	return h.Joist.Width
}

// HeightTolerance is how far below the tatami height a stack may finish.
const HeightTolerance = 2.0

// FindHeightStacks returns every joist orientation and plywood thickness combination
// whose total with the flooring lands within HeightTolerance below tatamiHeight,
// sorted by total ascending.
func FindHeightStacks(joists []JoistSize, plywoodThicknesses []float64, flooring, tatamiHeight float64) []HeightStack {
	stacks := []HeightStack{}
	if math.IsNaN(tatamiHeight) || math.IsNaN(flooring) {
		return stacks
	}
	minTotal := tatamiHeight - HeightTolerance
	fits := func(total float64) bool {
		return total >= minTotal && total <= tatamiHeight
	}

	for _, j := range joists {
		for _, ply := range plywoodThicknesses {
			if total := j.Height + ply + flooring; fits(total) {
				stacks = append(stacks, HeightStack{Joist: j, JoistRise: j.Height, Plywood: ply, Flooring: flooring, Total: total})
			}
			if total := j.Width + ply + flooring; fits(total) {
				stacks = append(stacks, HeightStack{Joist: j, OnSide: true, JoistRise: j.Width, Plywood: ply, Flooring: flooring, Total: total})
			}
		}
	}

	sort.SliceStable(stacks, func(a, b int) bool {
		return stacks[a].Total < stacks[b].Total
	})
	return stacks
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
