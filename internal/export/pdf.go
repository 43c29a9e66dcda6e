// Package export writes cutting plans to PDF cut sheets, QR-coded stock labels
// and Excel workbooks.
package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// Document is everything one cut sheet shows. Only Plan is required; the framing,
// plywood and insulation sections are skipped when empty.
type Document struct {
	Title      string
	Plan       model.CuttingPlan
	Layout     model.Layout
	Framing    model.FramingLayout
	Sheets     model.SheetPlan
	Insulation model.InsulationSummary
	CreatedAt  time.Time
}

// partColor represents an RGB color for a diagram part.
type partColor struct {
	R, G, B int
}

// displayColors gives every part display type its own fill.
var displayColors = map[model.DisplayType]partColor{
	model.DisplayTarget:           {R: 76, G: 175, B: 80},   // green
	model.DisplayTargetFromOffcut: {R: 33, G: 150, B: 243},  // blue
	model.DisplayUnprocessed:      {R: 121, G: 85, B: 72},   // brown
	model.DisplayReusedOffcut:     {R: 255, G: 152, B: 0},   // orange
	model.DisplayOffcut:           {R: 200, G: 200, B: 200}, // grey
}

var displayNames = map[model.DisplayType]string{
	model.DisplayTarget:           "Cut piece",
	model.DisplayTargetFromOffcut: "Cut from offcut",
	model.DisplayUnprocessed:      "Uncut stock",
	model.DisplayReusedOffcut:     "Offcut joined later",
	model.DisplayOffcut:           "Offcut",
}

// legendOrder fixes the legend order; map iteration would shuffle it.
var legendOrder = []model.DisplayType{
	model.DisplayTarget,
	model.DisplayTargetFromOffcut,
	model.DisplayUnprocessed,
	model.DisplayReusedOffcut,
	model.DisplayOffcut,
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	barHeight    = 10.0
	groupHeight  = 24.0
	drawAreaTop  = marginTop + headerHeight + 12.0
	drawWidth    = pageWidth - marginLeft - marginRight
)

// ExportPDF generates the cut sheet: one or more pages of stock unit diagrams grouped by
// cut pattern, followed by a summary page with counts, offcuts and the material lists.
func ExportPDF(path string, doc Document) error {
	if doc.Plan.IsEmpty() {
		return fmt.Errorf("no stock units to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(doc.title(), true)

	renderDiagramPages(pdf, doc)
	pdf.AddPage()
	renderSummaryPage(pdf, doc)

	return pdf.OutputFileAndClose(path)
}

func (doc Document) title() string {
	if doc.Title == "" {
		return "Joist cut list"
	}
	return doc.Title
}

// groupsPerPage is how many pattern groups fit below the page header.
func groupsPerPage() int {
	h := float64(pageHeight - drawAreaTop - marginBottom - 8)
	return int(h / groupHeight)
}

func renderDiagramPages(pdf *fpdf.Fpdf, doc Document) {
	groups := doc.Layout.Groups
	perPage := groupsPerPage()
	pages := int(math.Max(1, math.Ceil(float64(len(groups))/float64(perPage))))

	for page := 0; page < pages; page++ {
		pdf.AddPage()
		renderPageHeader(pdf, doc, page+1, pages)

		y := drawAreaTop
		end := int(math.Min(float64(len(groups)), float64((page+1)*perPage)))
		for i := page * perPage; i < end; i++ {
			drawGroup(pdf, groups[i], doc.Plan.TargetLength, y)
			y += groupHeight
		}
		drawLegend(pdf, pageHeight-marginBottom-4)
	}
}

func renderPageHeader(pdf *fpdf.Fpdf, doc Document, page, pages int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %.0f mm pieces from %.0f mm stock", doc.title(), doc.Plan.TargetLength, doc.Plan.StockLength)
	pdf.CellFormat(drawWidth, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Stock units: %d | Extra from offcuts: %d | Utilization: %.1f%% | Page %d/%d",
		doc.Plan.RequiredCount, doc.Plan.TotalStockUnits, doc.Plan.ExtraTargetsFromOffcuts,
		doc.Layout.Utilization(), page, pages)
	pdf.CellFormat(drawWidth, 5, stats, "", 0, "L", false, 0, "")
}

// drawGroup renders one pattern group as a scaled bar with each part filled by its type.
func drawGroup(pdf *fpdf.Fpdf, g model.PatternGroup, target, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	heading := fmt.Sprintf("%.0f mm x %d  (%s, %.1f%% used)", g.StockLength, g.UnitCount, g.Kind.Label(), g.Utilization())
	pdf.CellFormat(drawWidth, 5, heading, "", 0, "L", false, 0, "")

	barY := y + 6
	scale := drawWidth / g.StockLength
	pdf.SetFillColor(245, 235, 215)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, barY, drawWidth, barHeight, "FD")

	for _, p := range g.Parts {
		col := displayColors[p.Type]
		px := marginLeft + p.Offset*scale
		pw := p.Length * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, barY, pw, barHeight, "FD")

		// Length label (only if the segment is wide enough)
		label := fmt.Sprintf("%.0f", p.Length)
		pdf.SetFont("Helvetica", "", labelFontSize(pw))
		if w := pdf.GetStringWidth(label); w < pw-2 {
			pdf.SetXY(px+(pw-w)/2, barY+barHeight/2-2)
			pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
		}
	}

	// Target length tick marks along the bottom edge
	if target > 0 && target < g.StockLength {
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.15)
		for x := target; x < g.StockLength; x += target {
			tx := marginLeft + x*scale
			pdf.Line(tx, barY+barHeight, tx, barY+barHeight+1.5)
		}
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, barY+barHeight+1)
	pdf.CellFormat(drawWidth, 3.5, unitList(g.UnitIDs, 12), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// unitList joins unit ids, abbreviating after max entries.
func unitList(ids []string, max int) string {
	s := ""
	for i, id := range ids {
		if i == max {
			return s + fmt.Sprintf(" ... (+%d)", len(ids)-max)
		}
		if i > 0 {
			s += ", "
		}
		s += id
	}
	return s
}

func drawLegend(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	x := marginLeft
	for _, t := range legendOrder {
		col := displayColors[t]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		name := displayNames[t]
		w := pdf.GetStringWidth(name) + 2
		pdf.SetXY(x+4, y)
		pdf.CellFormat(w, 4, name, "", 0, "L", false, 0, "")
		x += w + 8
	}
}

type summaryItem struct {
	label string
	value string
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, doc Document) {
	plan := doc.Plan

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(drawWidth, 10, doc.title()+" - Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	left := marginTop + 18
	left = renderItems(pdf, marginLeft, left, "Joists", []summaryItem{
		{"Pieces required", fmt.Sprintf("%d x %.0f mm", plan.RequiredCount, plan.TargetLength)},
		{"Stock units", fmt.Sprintf("%d x %.0f mm", plan.TotalStockUnits, plan.StockLength)},
		{"Uncut stock units", fmt.Sprintf("%d", plan.UnprocessedStockUnits)},
		{"Cut stock units", fmt.Sprintf("%d", plan.CutStockUnits)},
		{"Offcuts reused", fmt.Sprintf("%d", plan.ScrapsUsedCount)},
		{"Extra from offcuts", fmt.Sprintf("%d", plan.ExtraTargetsFromOffcuts)},
		{"Leftover offcut length", fmt.Sprintf("%.0f mm", plan.TotalOffcutLength())},
	})

	left = renderOffcutTable(pdf, left+4, "Offcuts", plan.Offcuts)
	renderOffcutTable(pdf, left+4, "Secondary offcuts", plan.SecondaryOffcuts)

	// Material lists in the right column
	x := marginLeft + drawWidth/2
	right := marginTop + 18
	if !doc.Framing.IsZero() {
		f := doc.Framing
		right = renderItems(pdf, x, right, "Framing", []summaryItem{
			{"Room", fmt.Sprintf("%.0f x %.0f mm", f.RoomWidth, f.RoomDepth)},
			{"Joist columns", fmt.Sprintf("%d", f.Columns)},
			{"Standard bays", fmt.Sprintf("%d x %.0f mm", f.StandardBays, f.Spacing)},
			{"Last bay", fmt.Sprintf("%.0f mm", f.LastBayWidth)},
			{"Total joist length", fmt.Sprintf("%.0f mm", f.TotalJoistLength)},
		}) + 4
	}
	if doc.Sheets.TotalSheets > 0 {
		s := doc.Sheets
		right = renderItems(pdf, x, right, "Plywood", []summaryItem{
			{"Sheet", fmt.Sprintf("%.0f x %.0f mm", s.SheetWidth, s.SheetLength)},
			{"Sheets", fmt.Sprintf("%d (%d x %d)", s.TotalSheets, s.WidthSheets, s.DepthSheets)},
			{"Sheets to trim", fmt.Sprintf("%d", s.PartialCount())},
			{"Utilization", fmt.Sprintf("%.1f%%", s.Utilization)},
		}) + 4
	}
	if len(doc.Insulation.Pieces) > 0 {
		ins := doc.Insulation
		items := []summaryItem{
			{"Boards", fmt.Sprintf("%d (%.0f x %.0f mm)", ins.BoardsNeeded, ins.Board.Width, ins.Board.Length)},
			{"Area", fmt.Sprintf("%.2f m2", ins.TotalArea()/1e6)},
		}
		for _, p := range ins.Pieces {
			items = append(items, summaryItem{fmt.Sprintf("%.0f x %.0f mm", p.Width, p.Length), fmt.Sprintf("%d pcs", p.Count)})
		}
		renderItems(pdf, x, right, "Insulation", items)
	}

	footer := "Generated by TatamiCut"
	if !doc.CreatedAt.IsZero() {
		footer += " on " + doc.CreatedAt.Format("2006-01-02 15:04")
	}
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(drawWidth, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderItems draws a heading and label/value rows, returning the next free y.
func renderItems(pdf *fpdf.Fpdf, x, y float64, heading string, items []summaryItem) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 8

	for _, item := range items {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(x+5, y)
		pdf.CellFormat(45, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(60, 5, item.value, "", 0, "L", false, 0, "")
		y += 5.5
	}
	return y
}

func renderOffcutTable(pdf *fpdf.Fpdf, y float64, heading string, entries []model.OffcutEntry) float64 {
	if len(entries) == 0 {
		return y
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 6, heading, "", 0, "L", false, 0, "")
	y += 7

	colWidths := []float64{35, 20}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft+5, y)
	pdf.CellFormat(colWidths[0], 5, "Length", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[1], 5, "Count", "1", 0, "C", true, 0, "")
	y += 5

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range entries {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(colWidths[0], 5, fmt.Sprintf("%.1f mm", e.Length), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidths[1], 5, fmt.Sprintf("%d", e.Count), "1", 0, "C", true, 0, "")
		y += 5
	}
	return y
}

// labelFontSize returns a font size that fits the segment width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
