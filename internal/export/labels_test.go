package export

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/piwi3910/TatamiCut/internal/engine"
	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	plan := engine.New(engine.Settings{}).Allocate(1000, 1600, 4, false)

	if err := ExportLabels(path, "Six mat room", plan); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels_many.pdf")
	plan := engine.New(engine.Settings{}).Allocate(300, 300, labelsPerPage+5, false)

	if err := ExportLabels(path, "", plan); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportLabels_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportLabels(path, "", model.EmptyPlan()); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestCollectLabelInfos_CutUnits(t *testing.T) {
	plan := engine.New(engine.Settings{}).Allocate(1000, 1600, 4, false)
	labels := CollectLabelInfos("job", plan)

	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}
	for i, l := range labels {
		if l.UnitNumber != i+1 {
			t.Errorf("label %d: expected number %d, got %d", i, i+1, l.UnitNumber)
		}
		if len(l.Cuts) != 1 || l.Cuts[0] != 1000 {
			t.Errorf("label %d: expected one 1000 cut, got %v", i, l.Cuts)
		}
		if l.Offcut != 600 {
			t.Errorf("label %d: expected offcut 600, got %g", i, l.Offcut)
		}
		if l.Uncut {
			t.Errorf("label %d: expected cut unit", i)
		}
	}

	// The first two offcuts are joined into a recovered piece
	if len(labels[0].Reused) != 1 || labels[0].Reused[0] != "stock-1/p2" {
		t.Errorf("expected stock-1/p2 reused, got %v", labels[0].Reused)
	}
	if len(labels[1].Reused) != 1 {
		t.Errorf("expected second unit offcut reused, got %v", labels[1].Reused)
	}
	if len(labels[2].Reused) != 0 || len(labels[3].Reused) != 0 {
		t.Error("expected last two offcuts to stay unused")
	}
}

func TestCollectLabelInfos_UncutAndFromOffcut(t *testing.T) {
	plan := engine.New(engine.Settings{}).Allocate(2600, 1820, 2, false)
	labels := CollectLabelInfos("", plan)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	uncut := 0
	for _, l := range labels {
		if l.Uncut {
			uncut++
			if l.cutText() != "Use whole" {
				t.Errorf("unexpected text for uncut unit: %q", l.cutText())
			}
			continue
		}
		if len(l.Cuts) != 2 {
			t.Fatalf("expected two 780 cuts on the cut unit, got %v", l.Cuts)
		}
		if got := l.cutText(); got != "Cut 780 + 780, offcut 260" {
			t.Errorf("unexpected cut text %q", got)
		}
	}
	if uncut != 2 {
		t.Errorf("expected 2 uncut units, got %d", uncut)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		Job:         "Six mat room",
		UnitID:      "stock-2",
		UnitNumber:  2,
		StockLength: 1820,
		Cuts:        []float64{780, 780},
		Offcut:      260,
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if decoded.UnitID != info.UnitID || decoded.Offcut != info.Offcut || len(decoded.Cuts) != 2 {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, info)
	}
}
