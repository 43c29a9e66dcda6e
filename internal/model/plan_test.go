package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEmptyPlanHasNoNilLists(t *testing.T) {
	p := EmptyPlan()
	if !p.IsEmpty() {
		t.Error("EmptyPlan should be empty")
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty plan should serialize lists as [], got %s", data)
	}
}

func TestStockUnitLengths(t *testing.T) {
	u := StockUnit{ID: "stock-1", Length: 1820, Parts: []Part{
		{Type: PartTarget, Length: 780},
		{Type: PartTargetFromOffcut, Length: 780},
		{Type: PartOffcut, Length: 200},
	}}
	if u.PartsLength() != 1760 {
		t.Errorf("expected parts length 1760, got %f", u.PartsLength())
	}
	if u.UsedLength() != 1560 {
		t.Errorf("expected used length 1560, got %f", u.UsedLength())
	}
	if u.Waste() != 60 {
		t.Errorf("expected waste 60, got %f", u.Waste())
	}
}

func TestPlanTotals(t *testing.T) {
	p := EmptyPlan()
	p.StockUnits = []StockUnit{{ID: "a", Length: 1820}, {ID: "b", Length: 1820}}
	p.Offcuts = []OffcutEntry{{Length: 200, Count: 3}}
	p.SecondaryOffcuts = []OffcutEntry{{Length: 50, Count: 2}}

	if p.TotalStockLength() != 3640 {
		t.Errorf("expected 3640, got %f", p.TotalStockLength())
	}
	if p.TotalOffcutLength() != 700 {
		t.Errorf("expected 700, got %f", p.TotalOffcutLength())
	}
	if p.OffcutCount() != 3 {
		t.Errorf("expected 3, got %d", p.OffcutCount())
	}
	if u := p.FindStockUnit("b"); u == nil || u.ID != "b" {
		t.Errorf("FindStockUnit(b) = %v", u)
	}
	if p.FindStockUnit("c") != nil {
		t.Error("expected nil for unknown unit")
	}
}

func TestPartTypeText(t *testing.T) {
	data, err := json.Marshal(Part{ID: "p", Type: PartTargetFromOffcut, Length: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"type":"target_from_offcut"`) {
		t.Errorf("unexpected encoding %s", data)
	}

	var pt PartType
	if err := pt.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown part type")
	}
	var pk PatternKind
	if err := pk.UnmarshalText([]byte("different_offcut_pair")); err != nil || pk != PatternDifferentOffcutPair {
		t.Errorf("UnmarshalText = %v, %v", pk, err)
	}
}

func TestSameLength(t *testing.T) {
	if !SameLength(200, 200.09) {
		t.Error("200 and 200.09 should be the same length")
	}
	if SameLength(200, 200.2) {
		t.Error("200 and 200.2 should differ")
	}
}
