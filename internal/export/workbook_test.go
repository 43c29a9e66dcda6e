package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TatamiCut/internal/model"
)

func TestExportWorkbook_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")
	doc := buildTestDocument()

	if err := ExportWorkbook(path, doc); err != nil {
		t.Fatalf("ExportWorkbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetStockUnits, SheetOffcuts, SheetCompositions, SheetPatterns}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	units, err := f.GetRows(SheetStockUnits)
	if err != nil {
		t.Fatalf("failed to read stock units: %v", err)
	}
	// Header plus one row per stock unit
	if len(units) != 1+len(doc.Plan.StockUnits) {
		t.Errorf("expected %d rows, got %d", 1+len(doc.Plan.StockUnits), len(units))
	}
	if units[1][1] != "stock-1" {
		t.Errorf("expected first unit stock-1, got %q", units[1][1])
	}
	if units[1][3] != "1000" {
		t.Errorf("expected cut list 1000, got %q", units[1][3])
	}

	offcuts, err := f.GetRows(SheetOffcuts)
	if err != nil {
		t.Fatalf("failed to read offcuts: %v", err)
	}
	// 600 x2 primary, 200 x1 secondary
	if len(offcuts) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(offcuts))
	}
	if offcuts[1][0] != "primary" || offcuts[2][0] != "secondary" {
		t.Errorf("unexpected offcut kinds %q, %q", offcuts[1][0], offcuts[2][0])
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	if summary[1][1] != "Six mat room" {
		t.Errorf("expected job title, got %q", summary[1][1])
	}
	wantSummary := map[string]string{
		"Leftover offcut pieces": strconv.Itoa(doc.Plan.OffcutCount()),
		"Cut into pieces (%)":    strconv.FormatFloat(round2(doc.Layout.PieceUtilization()), 'f', -1, 64),
	}
	for _, row := range summary {
		if exp, ok := wantSummary[row[0]]; ok {
			if row[1] != exp {
				t.Errorf("%s: expected %q, got %q", row[0], exp, row[1])
			}
			delete(wantSummary, row[0])
		}
	}
	if len(wantSummary) > 0 {
		t.Errorf("summary rows missing: %v", wantSummary)
	}
}

func TestExportWorkbook_PatternOffcutPerUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.xlsx")
	doc := buildTestDocument()

	if err := ExportWorkbook(path, doc); err != nil {
		t.Fatalf("ExportWorkbook returned error: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetPatterns)
	if err != nil {
		t.Fatalf("failed to read patterns: %v", err)
	}
	if len(rows) != 1+len(doc.Layout.Groups) {
		t.Fatalf("expected %d rows, got %d", 1+len(doc.Layout.Groups), len(rows))
	}
	for i, g := range doc.Layout.Groups {
		var offcut float64
		for _, p := range g.Parts {
			if p.Type == model.DisplayOffcut || p.Type == model.DisplayReusedOffcut {
				offcut += p.Length
			}
		}
		if got, exp := rows[i+1][4], strconv.FormatFloat(offcut, 'f', -1, 64); got != exp {
			t.Errorf("group %d: expected offcut %s, got %s", i, exp, got)
		}
	}
}

func TestExportWorkbook_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	if err := ExportWorkbook(path, Document{Plan: model.EmptyPlan()}); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestRound2(t *testing.T) {
	if got := round2(81.2549); got != 81.25 {
		t.Errorf("expected 81.25, got %g", got)
	}
}
