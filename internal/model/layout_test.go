package model

import (
	"math"
	"testing"
)

func TestLayoutUtilization_ReusedOffcutCountsOnlyAsUsed(t *testing.T) {
	l := Layout{Groups: []PatternGroup{{
		Parts: []DiagramPart{
			{Type: DisplayTarget, Offset: 0, Length: 600},
			{Type: DisplayReusedOffcut, Offset: 600, Length: 300},
			{Type: DisplayOffcut, Offset: 900, Length: 100},
		},
		UnitCount:   2,
		StockLength: 1000,
	}}}

	if got := l.Utilization(); math.Abs(got-90) > 1e-9 {
		t.Errorf("Utilization() = %g, want 90", got)
	}
	if got := l.PieceUtilization(); math.Abs(got-60) > 1e-9 {
		t.Errorf("PieceUtilization() = %g, want 60", got)
	}
	if got := l.Groups[0].PieceLength(); got != 600 {
		t.Errorf("PieceLength() = %g, want 600", got)
	}
}

func TestLayoutPieceUtilization_UncutStockCounts(t *testing.T) {
	l := Layout{Groups: []PatternGroup{{
		Parts:       []DiagramPart{{Type: DisplayUnprocessed, Length: 1820}},
		UnitCount:   3,
		StockLength: 1820,
	}}}
	if got := l.PieceUtilization(); got != 100 {
		t.Errorf("PieceUtilization() = %g, want 100", got)
	}
	if got := (Layout{}).PieceUtilization(); got != 0 {
		t.Errorf("empty layout PieceUtilization() = %g, want 0", got)
	}
}
