package model

import (
	"fmt"
	"math"
)

// LengthTolerance is the distance (mm) under which two lengths are treated as equal
// when grouping offcuts and cut patterns.
const LengthTolerance = 0.1

// SameLength reports whether a and b are equal within LengthTolerance.
func SameLength(a, b float64) bool {
	return math.Abs(a-b) < LengthTolerance
}

// PartType classifies a segment of a stock unit.
type PartType int

const (
	PartUnprocessed      PartType = iota // Whole stock unit used without cutting
	PartTarget                           // Segment cut to the required length
	PartOffcut                           // Leftover kept for reuse
	PartTargetFromOffcut                 // Segment cut out of an earlier offcut
)

func (t PartType) String() string {
	switch t {
	case PartUnprocessed:
		return "unprocessed"
	case PartTarget:
		return "target"
	case PartOffcut:
		return "offcut"
	case PartTargetFromOffcut:
		return "target_from_offcut"
	default:
		return "unknown"
	}
}

// MarshalText encodes the part type by name.
func (t PartType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a part type name.
func (t *PartType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unprocessed":
		*t = PartUnprocessed
	case "target":
		*t = PartTarget
	case "offcut":
		*t = PartOffcut
	case "target_from_offcut":
		*t = PartTargetFromOffcut
	default:
		return fmt.Errorf("unknown part type %q", string(b))
	}
	return nil
}

// PatternKind describes how a target piece (or a stock unit) was produced.
type PatternKind int

const (
	PatternNoCut               PatternKind = iota // Whole pieces, no cut needed
	PatternUnprocessed                            // Stock used whole
	PatternCombined                               // Whole stock plus a freshly cut piece
	PatternSameOffcutPair                         // Two offcuts of equal length joined
	PatternDifferentOffcutPair                    // Two offcuts of different length joined
	PatternFromOffcut                             // Piece taken out of an existing offcut
)

var patternKindNames = map[PatternKind]string{
	PatternNoCut:               "no_cut",
	PatternUnprocessed:         "unprocessed",
	PatternCombined:            "combined",
	PatternSameOffcutPair:      "same_offcut_pair",
	PatternDifferentOffcutPair: "different_offcut_pair",
	PatternFromOffcut:          "from_offcut",
}

func (k PatternKind) String() string {
	if name, ok := patternKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Label returns a human readable name for reports.
func (k PatternKind) Label() string {
	switch k {
	case PatternNoCut:
		return "No cut"
	case PatternUnprocessed:
		return "Uncut stock"
	case PatternCombined:
		return "Stock + cut piece"
	case PatternSameOffcutPair:
		return "Two equal offcuts"
	case PatternDifferentOffcutPair:
		return "Two different offcuts"
	case PatternFromOffcut:
		return "From offcut"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the pattern kind by name.
func (k PatternKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a pattern kind name.
func (k *PatternKind) UnmarshalText(b []byte) error {
	for kind, name := range patternKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown pattern kind %q", string(b))
}

// Part is a linear segment of a stock unit.
type Part struct {
	ID           string   `json:"id"`
	Type         PartType `json:"type"`
	Length       float64  `json:"length"`
	StockUnitID  string   `json:"stock_unit_id"`
	SourcePartID string   `json:"source_part_id,omitempty"` // Offcut this piece was cut from
}

// StockUnit is one purchased length of stock and the parts cut from it.
type StockUnit struct {
	ID     string  `json:"id"`
	Length float64 `json:"length"`
	Parts  []Part  `json:"parts"`
}

// PartsLength returns the summed length of all parts.
func (u StockUnit) PartsLength() float64 {
	var total float64
	for _, p := range u.Parts {
		total += p.Length
	}
	return total
}

// UsedLength returns the length that ends up in the floor, i.e. everything but offcuts.
func (u StockUnit) UsedLength() float64 {
	var total float64
	for _, p := range u.Parts {
		if p.Type != PartOffcut {
			total += p.Length
		}
	}
	return total
}

// Waste returns the length not accounted for by any part.
func (u StockUnit) Waste() float64 {
	w := u.Length - u.PartsLength()
	if w < 0 {
		return 0
	}
	return w
}

// OffcutEntry counts leftover pieces of one length.
type OffcutEntry struct {
	Length        float64  `json:"length"`
	Count         int      `json:"count"`
	SourcePartIDs []string `json:"source_part_ids,omitempty"`
}

// CompositionGroup counts target pieces produced the same way.
type CompositionGroup struct {
	Kind    PatternKind `json:"kind"`
	Lengths []float64   `json:"lengths"`
	Count   int         `json:"count"`
}

// RecoveredPiece is a target piece built from offcuts after the main pass.
// It is not owned by a single stock unit.
type RecoveredPiece struct {
	ID            string      `json:"id"`
	Kind          PatternKind `json:"kind"`
	Length        float64     `json:"length"`
	Inputs        []float64   `json:"inputs"`
	SourcePartIDs []string    `json:"source_part_ids,omitempty"`
}

// CuttingPlan is the allocator output. Every field is always present.
type CuttingPlan struct {
	TargetLength  float64 `json:"target_length"`
	StockLength   float64 `json:"stock_length"`
	RequiredCount int     `json:"required_count"`
	EcoMode       bool    `json:"eco_mode"`

	TotalStockUnits         int `json:"total_stock_units"`
	FullLengthPieces        int `json:"full_length_pieces"`
	UnprocessedStockUnits   int `json:"unprocessed_stock_units"`
	CutStockUnits           int `json:"cut_stock_units"`
	ScrapsUsedCount         int `json:"scraps_used_count"`
	ExtraTargetsFromOffcuts int `json:"extra_targets_from_offcuts"`

	Offcuts          []OffcutEntry      `json:"offcuts"`           // From stock
	SecondaryOffcuts []OffcutEntry      `json:"secondary_offcuts"` // From joined or trimmed offcuts
	Compositions     []CompositionGroup `json:"compositions"`
	StockUnits       []StockUnit        `json:"stock_units"`
	Recovered        []RecoveredPiece   `json:"recovered"`
}

// EmptyPlan returns the canonical plan for invalid input: zero counts, empty lists.
func EmptyPlan() CuttingPlan {
	return CuttingPlan{
		Offcuts:          []OffcutEntry{},
		SecondaryOffcuts: []OffcutEntry{},
		Compositions:     []CompositionGroup{},
		StockUnits:       []StockUnit{},
		Recovered:        []RecoveredPiece{},
	}
}

// IsEmpty reports whether the plan consumes no stock.
func (p CuttingPlan) IsEmpty() bool {
	return p.TotalStockUnits == 0 && len(p.StockUnits) == 0
}

// TotalStockLength returns the total purchased length.
func (p CuttingPlan) TotalStockLength() float64 {
	var total float64
	for _, u := range p.StockUnits {
		total += u.Length
	}
	return total
}

// TotalOffcutLength returns the summed length of remaining primary and secondary offcuts.
func (p CuttingPlan) TotalOffcutLength() float64 {
	var total float64
	for _, o := range p.Offcuts {
		total += o.Length * float64(o.Count)
	}
	for _, o := range p.SecondaryOffcuts {
		total += o.Length * float64(o.Count)
	}
	return total
}

// OffcutCount returns the number of primary offcut pieces left over.
func (p CuttingPlan) OffcutCount() int {
	n := 0
	for _, o := range p.Offcuts {
		n += o.Count
	}
	return n
}

// FindStockUnit returns a pointer to the stock unit with the given ID, or nil.
func (p *CuttingPlan) FindStockUnit(id string) *StockUnit {
	for i := range p.StockUnits {
		if p.StockUnits[i].ID == id {
			return &p.StockUnits[i]
		}
	}
	return nil
}
