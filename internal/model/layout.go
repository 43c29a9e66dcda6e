package model

// DisplayType is how a part is presented in a cut diagram.
type DisplayType string

const (
	DisplayUnprocessed      DisplayType = "unprocessed"
	DisplayTarget           DisplayType = "target"
	DisplayTargetFromOffcut DisplayType = "target_from_offcut"
	DisplayOffcut           DisplayType = "offcut"
	DisplayReusedOffcut     DisplayType = "reused_offcut" // Offcut that feeds a recovered piece
)

// IsUsed reports whether parts of this type end up in the floor.
func (d DisplayType) IsUsed() bool {
	return d != DisplayOffcut
}

// DiagramPart is one segment in a stock unit diagram.
type DiagramPart struct {
	Type   DisplayType `json:"type"`
	Offset float64     `json:"offset"` // mm from the start of the stock unit
	Length float64     `json:"length"`
}

// PatternGroup is a set of stock units cut the same way.
type PatternGroup struct {
	Signature   string        `json:"signature"`
	Kind        PatternKind   `json:"kind"`
	Parts       []DiagramPart `json:"parts"`
	UnitCount   int           `json:"unit_count"`
	UnitIDs     []string      `json:"unit_ids"`
	StockLength float64       `json:"stock_length"`
}

// UsedLength returns the used length of one unit in the group.
func (g PatternGroup) UsedLength() float64 {
	var total float64
	for _, p := range g.Parts {
		if p.Type.IsUsed() {
			total += p.Length
		}
	}
	return total
}

// TotalUsedLength returns the used length across all units of the group.
func (g PatternGroup) TotalUsedLength() float64 {
	return g.UsedLength() * float64(g.UnitCount)
}

// TotalStockLength returns the stock length consumed by the group.
func (g PatternGroup) TotalStockLength() float64 {
	return g.StockLength * float64(g.UnitCount)
}

// Utilization returns the used share of the stock in percent.
func (g PatternGroup) Utilization() float64 {
	total := g.TotalStockLength()
	if total == 0 {
		return 0
	}
	return (g.TotalUsedLength() / total) * 100.0
}

// PieceLength returns the length of one unit in the group that went into pieces,
// leaving out offcuts joined into recovered pieces.
func (g PatternGroup) PieceLength() float64 {
	var total float64
	for _, p := range g.Parts {
		if p.Type != DisplayOffcut && p.Type != DisplayReusedOffcut {
			total += p.Length
		}
	}
	return total
}

// TargetCount returns the number of pieces per unit that end up in the floor.
func (g PatternGroup) TargetCount() int {
	n := 0
	for _, p := range g.Parts {
		if p.Type == DisplayTarget || p.Type == DisplayTargetFromOffcut {
			n++
		}
	}
	return n
}

// Layout is the display-ready projection of a cutting plan.
type Layout struct {
	Groups          []PatternGroup `json:"groups"`
	ExcludedUnitIDs []string       `json:"excluded_unit_ids"`
}

// UnitCount returns the number of stock units shown in the layout.
func (l Layout) UnitCount() int {
	n := 0
	for _, g := range l.Groups {
		n += g.UnitCount
	}
	return n
}

// Utilization returns overall used length over displayed stock length in percent.
func (l Layout) Utilization() float64 {
	var used, total float64
	for _, g := range l.Groups {
		used += g.TotalUsedLength()
		total += g.TotalStockLength()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}

// PieceUtilization returns the length cut into pieces over displayed stock length in
// percent. Unlike Utilization it does not count reused offcuts.
func (l Layout) PieceUtilization() float64 {
	var used, total float64
	for _, g := range l.Groups {
		used += g.PieceLength() * float64(g.UnitCount)
		total += g.TotalStockLength()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}
