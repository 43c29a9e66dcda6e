package model

import (
	"fmt"
	"math"
)

// SheetCut is the piece cut from one plywood sheet at its grid position.
type SheetCut struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	Partial bool    `json:"partial"` // Sheet is trimmed in at least one direction
}

// SizeKey groups cuts of the same size.
func (c SheetCut) SizeKey() string {
	return fmt.Sprintf("%gx%g", c.Width, c.Length)
}

// SheetCutGroup counts sheets cut to the same size.
type SheetCutGroup struct {
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	Count   int     `json:"count"`
	Partial bool    `json:"partial"`
}

// SheetPlan covers the room floor with a grid of plywood sheets.
type SheetPlan struct {
	RoomWidth   float64    `json:"room_width"`
	RoomDepth   float64    `json:"room_depth"`
	SheetWidth  float64    `json:"sheet_width"`  // Across the room width, after orientation
	SheetLength float64    `json:"sheet_length"` // Along the room depth, after orientation
	Rotated     bool       `json:"rotated"`      // Long side runs across the room width
	WidthSheets int        `json:"width_sheets"`
	DepthSheets int        `json:"depth_sheets"`
	TotalSheets int        `json:"total_sheets"`
	Utilization float64    `json:"utilization"` // Percent of purchased area covering the floor
	Cuts        []SheetCut `json:"cuts"`
}

// WasteArea returns purchased area not covering the floor, in square millimetres.
func (p SheetPlan) WasteArea() float64 {
	return float64(p.TotalSheets)*p.SheetWidth*p.SheetLength - p.RoomWidth*p.RoomDepth
}

// PartialCount returns the number of sheets that need trimming.
func (p SheetPlan) PartialCount() int {
	n := 0
	for _, c := range p.Cuts {
		if c.Partial {
			n++
		}
	}
	return n
}

// Groups returns the cuts grouped by size in first-appearance order.
func (p SheetPlan) Groups() []SheetCutGroup {
	groups := []SheetCutGroup{}
	index := make(map[string]int)
	for _, c := range p.Cuts {
		key := c.SizeKey()
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, SheetCutGroup{Width: c.Width, Length: c.Length, Count: 1, Partial: c.Partial})
	}
	return groups
}

// CalculateSheetPlan tries the sheet both ways round and keeps the orientation with
// the higher utilization. On a tie the rotated orientation wins.
func CalculateSheetPlan(roomWidth, roomDepth, sheetWidth, sheetLength float64) SheetPlan {
	if !positive(roomWidth) || !positive(roomDepth) || !positive(sheetWidth) || !positive(sheetLength) {
		return SheetPlan{Cuts: []SheetCut{}}
	}
	normal := sheetGrid(roomWidth, roomDepth, sheetWidth, sheetLength)
	rotated := sheetGrid(roomWidth, roomDepth, sheetLength, sheetWidth)
	rotated.Rotated = true
	if normal.Utilization > rotated.Utilization {
		return normal
	}
	return rotated
}

func sheetGrid(roomWidth, roomDepth, sheetWidth, sheetLength float64) SheetPlan {
	across := int(math.Ceil(roomWidth / sheetWidth))
	along := int(math.Ceil(roomDepth / sheetLength))
	total := across * along

	p := SheetPlan{
		RoomWidth:   roomWidth,
		RoomDepth:   roomDepth,
		SheetWidth:  sheetWidth,
		SheetLength: sheetLength,
		WidthSheets: across,
		DepthSheets: along,
		TotalSheets: total,
		Utilization: roomWidth * roomDepth / (float64(total) * sheetWidth * sheetLength) * 100,
		Cuts:        make([]SheetCut, 0, total),
	}
	for i := 0; i < across; i++ {
		for j := 0; j < along; j++ {
			w := math.Min(sheetWidth, roomWidth-float64(i)*sheetWidth)
			l := math.Min(sheetLength, roomDepth-float64(j)*sheetLength)
			p.Cuts = append(p.Cuts, SheetCut{
				Index:   i*along + j,
				X:       float64(i) * sheetWidth,
				Y:       float64(j) * sheetLength,
				Width:   w,
				Length:  l,
				Partial: w < sheetWidth || l < sheetLength,
			})
		}
	}
	return p
}
