package model

import (
	"math"
	"testing"
)

func TestCalculateSheetPlanPicksBetterOrientation(t *testing.T) {
	p := CalculateSheetPlan(2730, 1820, 910, 1820)

	if p.Rotated {
		t.Error("expected the unrotated orientation")
	}
	if p.TotalSheets != 3 {
		t.Errorf("expected 3 sheets, got %d", p.TotalSheets)
	}
	if math.Abs(p.Utilization-100) > 1e-9 {
		t.Errorf("expected 100%% utilization, got %f", p.Utilization)
	}
	if p.PartialCount() != 0 {
		t.Errorf("expected no partial sheets, got %d", p.PartialCount())
	}
}

func TestCalculateSheetPlanTiePrefersRotated(t *testing.T) {
	p := CalculateSheetPlan(1820, 1820, 910, 1820)
	if !p.Rotated {
		t.Error("expected rotated orientation on a tie")
	}
	if p.SheetWidth != 1820 || p.SheetLength != 910 {
		t.Errorf("unexpected sheet orientation %fx%f", p.SheetWidth, p.SheetLength)
	}
	if p.TotalSheets != 2 {
		t.Errorf("expected 2 sheets, got %d", p.TotalSheets)
	}
}

func TestCalculateSheetPlanPartialSheets(t *testing.T) {
	p := CalculateSheetPlan(2000, 1000, 910, 1820)

	if p.TotalSheets != 3 {
		t.Fatalf("expected 3 sheets, got %d", p.TotalSheets)
	}
	if p.PartialCount() != 3 {
		t.Errorf("expected 3 partial sheets, got %d", p.PartialCount())
	}
	last := p.Cuts[2]
	if math.Abs(last.Width-180) > 1e-9 || last.Length != 1000 {
		t.Errorf("unexpected last cut %+v", last)
	}
	groups := p.Groups()
	if len(groups) != 2 || groups[0].Count != 2 || groups[1].Count != 1 {
		t.Errorf("unexpected groups %+v", groups)
	}
	if math.Abs(p.WasteArea()-(3*910*1820-2000*1000)) > 1e-6 {
		t.Errorf("unexpected waste area %f", p.WasteArea())
	}
}

func TestCalculateSheetPlanInvalid(t *testing.T) {
	p := CalculateSheetPlan(0, 1000, 910, 1820)
	if p.TotalSheets != 0 || p.Cuts == nil {
		t.Errorf("expected empty plan, got %+v", p)
	}
}
