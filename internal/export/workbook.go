package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// Workbook sheet names.
const (
	SheetSummary      = "Summary"
	SheetStockUnits   = "Stock Units"
	SheetOffcuts      = "Offcuts"
	SheetCompositions = "Compositions"
	SheetPatterns     = "Patterns"
)

// ExportWorkbook writes the plan as an Excel workbook with a summary sheet, one row per
// stock unit, the leftover offcuts, the composition groups and the layout patterns.
func ExportWorkbook(path string, doc Document) error {
	if doc.Plan.IsEmpty() {
		return fmt.Errorf("no stock units to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetStockUnits, SheetOffcuts, SheetCompositions, SheetPatterns} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	w := &sheetWriter{f: f, header: header}
	w.table(SheetSummary, []interface{}{"Item", "Value"}, summaryRows(doc))
	w.table(SheetStockUnits, []interface{}{"#", "Unit", "Stock (mm)", "Cuts (mm)", "Offcut (mm)", "Used (mm)", "Waste (mm)"}, unitRows(doc.Plan))
	w.table(SheetOffcuts, []interface{}{"Kind", "Length (mm)", "Count"}, offcutRows(doc.Plan))
	w.table(SheetCompositions, []interface{}{"Pattern", "Lengths (mm)", "Count"}, compositionRows(doc.Plan))
	w.table(SheetPatterns, []interface{}{"Signature", "Pattern", "Units", "Stock (mm)", "Offcut per unit (mm)", "Utilization (%)"}, patternRows(doc.Plan, doc.Layout))
	if w.err != nil {
		return w.err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so the table calls can be chained.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) table(sheet string, header []interface{}, rows [][]interface{}) {
	if w.err != nil {
		return
	}
	w.row(sheet, 1, header)
	if w.err == nil {
		end, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := w.f.SetCellStyle(sheet, "A1", end, w.header); err != nil {
			w.err = fmt.Errorf("failed to style %s header: %w", sheet, err)
			return
		}
	}
	for i, r := range rows {
		w.row(sheet, i+2, r)
	}
	if w.err == nil {
		last, _ := excelize.ColumnNumberToName(len(header))
		if err := w.f.SetColWidth(sheet, "A", last, 18); err != nil {
			w.err = fmt.Errorf("failed to size %s columns: %w", sheet, err)
		}
	}
}

func (w *sheetWriter) row(sheet string, n int, values []interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, n, err)
	}
}

func summaryRows(doc Document) [][]interface{} {
	p := doc.Plan
	rows := [][]interface{}{
		{"Job", doc.title()},
		{"Target length (mm)", p.TargetLength},
		{"Stock length (mm)", p.StockLength},
		{"Pieces required", p.RequiredCount},
		{"Stock units", p.TotalStockUnits},
		{"Full length pieces", p.FullLengthPieces},
		{"Uncut stock units", p.UnprocessedStockUnits},
		{"Cut stock units", p.CutStockUnits},
		{"Offcuts reused", p.ScrapsUsedCount},
		{"Extra pieces from offcuts", p.ExtraTargetsFromOffcuts},
		{"Leftover offcut pieces", p.OffcutCount()},
		{"Leftover offcut length (mm)", p.TotalOffcutLength()},
		{"Utilization (%)", round2(doc.Layout.Utilization())},
		{"Cut into pieces (%)", round2(doc.Layout.PieceUtilization())},
	}
	if !doc.Framing.IsZero() {
		rows = append(rows,
			[]interface{}{"Joist columns", doc.Framing.Columns},
			[]interface{}{"Last bay (mm)", doc.Framing.LastBayWidth},
		)
	}
	if doc.Sheets.TotalSheets > 0 {
		rows = append(rows, []interface{}{"Plywood sheets", doc.Sheets.TotalSheets})
	}
	if doc.Insulation.BoardsNeeded > 0 {
		rows = append(rows, []interface{}{"Insulation boards", doc.Insulation.BoardsNeeded})
	}
	return rows
}

func unitRows(plan model.CuttingPlan) [][]interface{} {
	labels := CollectLabelInfos("", plan)
	rows := make([][]interface{}, 0, len(labels))
	for i, l := range labels {
		u := plan.StockUnits[i]
		cuts := make([]string, len(l.Cuts))
		for j, c := range l.Cuts {
			cuts[j] = fmt.Sprintf("%g", c)
		}
		if l.Uncut {
			cuts = []string{"whole"}
		}
		rows = append(rows, []interface{}{l.UnitNumber, l.UnitID, l.StockLength, strings.Join(cuts, " + "), l.Offcut, u.UsedLength(), u.Waste()})
	}
	return rows
}

func offcutRows(plan model.CuttingPlan) [][]interface{} {
	rows := [][]interface{}{}
	for _, e := range plan.Offcuts {
		rows = append(rows, []interface{}{"primary", e.Length, e.Count})
	}
	for _, e := range plan.SecondaryOffcuts {
		rows = append(rows, []interface{}{"secondary", e.Length, e.Count})
	}
	return rows
}

func compositionRows(plan model.CuttingPlan) [][]interface{} {
	rows := make([][]interface{}, 0, len(plan.Compositions))
	for _, c := range plan.Compositions {
		lengths := make([]string, len(c.Lengths))
		for i, l := range c.Lengths {
			lengths[i] = fmt.Sprintf("%g", l)
		}
		rows = append(rows, []interface{}{c.Kind.Label(), strings.Join(lengths, " + "), c.Count})
	}
	return rows
}

func patternRows(plan model.CuttingPlan, layout model.Layout) [][]interface{} {
	rows := make([][]interface{}, 0, len(layout.Groups))
	for _, g := range layout.Groups {
		var offcut float64
		if len(g.UnitIDs) > 0 {
			if u := plan.FindStockUnit(g.UnitIDs[0]); u != nil {
				offcut = u.PartsLength() - u.UsedLength()
			}
		}
		rows = append(rows, []interface{}{g.Signature, g.Kind.Label(), g.UnitCount, g.StockLength, offcut, round2(g.Utilization())})
	}
	return rows
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
