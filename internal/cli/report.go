package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/TatamiCut/internal/engine"
	"github.com/piwi3910/TatamiCut/internal/export"
	"github.com/piwi3910/TatamiCut/internal/model"
)

// diagramWidth is the number of cells a stock unit bar spans.
const diagramWidth = 40

var diagramStyles = map[model.DisplayType]lipgloss.Style{
	model.DisplayUnprocessed:      lipgloss.NewStyle().Foreground(colorBrown),
	model.DisplayTarget:           lipgloss.NewStyle().Foreground(colorGreen),
	model.DisplayTargetFromOffcut: lipgloss.NewStyle().Foreground(colorBlue),
	model.DisplayOffcut:           lipgloss.NewStyle().Foreground(colorDim),
	model.DisplayReusedOffcut:     lipgloss.NewStyle().Foreground(colorYellow),
}

var diagramRunes = map[model.DisplayType]string{
	model.DisplayUnprocessed:      "▓",
	model.DisplayTarget:           "█",
	model.DisplayTargetFromOffcut: "█",
	model.DisplayOffcut:           "░",
	model.DisplayReusedOffcut:     "▒",
}

// mm formats a length without trailing zeros.
func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " mm"
}

func joinLengths(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " + ")
}

// diagram draws one stock unit as a colored bar. Every part gets at least one cell.
func diagram(g model.PatternGroup) string {
	if g.StockLength <= 0 || len(g.Parts) == 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for i, p := range g.Parts {
		cells := int(math.Round(p.Length / g.StockLength * diagramWidth))
		if cells < 1 {
			cells = 1
		}
		if i == len(g.Parts)-1 && used+cells < diagramWidth {
			cells = diagramWidth - used
		}
		used += cells
		style, ok := diagramStyles[p.Type]
		if !ok {
			style = styleDim
		}
		b.WriteString(style.Render(strings.Repeat(diagramRunes[p.Type], cells)))
	}
	return b.String()
}

func renderLegend(w io.Writer) {
	order := []struct {
		t    model.DisplayType
		name string
	}{
		{model.DisplayTarget, "joist"},
		{model.DisplayTargetFromOffcut, "joist from offcut"},
		{model.DisplayUnprocessed, "uncut stock"},
		{model.DisplayReusedOffcut, "reused offcut"},
		{model.DisplayOffcut, "offcut"},
	}
	items := make([]string, len(order))
	for i, o := range order {
		items[i] = diagramStyles[o.t].Render(diagramRunes[o.t]) + " " + styleDim.Render(o.name)
	}
	fmt.Fprintln(w, "  "+strings.Join(items, "  "))
}

// renderPlanReport prints the cutting plan and, when present, the framing and
// sheet material summaries of the document.
func renderPlanReport(w io.Writer, doc export.Document) {
	plan := doc.Plan
	printTitle(w, "%s", doc.Title)

	printSection(w, "Joists")
	printKeyValue(w, "Piece length", mm(plan.TargetLength))
	printNumber(w, "Pieces", "%d", plan.RequiredCount)
	printKeyValue(w, "Stock length", mm(plan.StockLength))
	printNumber(w, "Stock units", "%d", plan.TotalStockUnits)
	printKeyValue(w, "Stock bought", mm(plan.TotalStockLength()))
	if plan.UnprocessedStockUnits > 0 {
		printNumber(w, "Uncut stock units", "%d", plan.UnprocessedStockUnits)
	}
	printNumber(w, "Cut stock units", "%d", plan.CutStockUnits)
	if plan.ScrapsUsedCount > 0 {
		printNumber(w, "Offcuts reused", "%d", plan.ScrapsUsedCount)
	}
	if plan.ExtraTargetsFromOffcuts > 0 {
		printNumber(w, "Pieces from offcuts", "%d", plan.ExtraTargetsFromOffcuts)
	}
	if n := plan.OffcutCount(); n > 0 {
		printNumber(w, "Offcut pieces left", "%d", n)
	}
	printNumber(w, "Utilization", "%.1f%%", doc.Layout.Utilization())
	printNumber(w, "Cut into pieces", "%.1f%%", doc.Layout.PieceUtilization())

	if len(doc.Layout.Groups) > 0 {
		printSection(w, "Cut patterns")
		rows := make([][]string, 0, len(doc.Layout.Groups))
		for _, g := range doc.Layout.Groups {
			rows = append(rows, []string{
				strconv.Itoa(g.UnitCount),
				mm(g.StockLength),
				g.Kind.Label(),
				diagram(g),
				fmt.Sprintf("%.1f%%", g.Utilization()),
			})
		}
		printTable(w, []string{"Units", "Stock", "Pattern", "Diagram", "Used"}, rows, nil)
		renderLegend(w)
	}

	if len(plan.Compositions) > 0 {
		printSection(w, "How the pieces are made")
		rows := make([][]string, 0, len(plan.Compositions))
		for _, c := range plan.Compositions {
			rows = append(rows, []string{c.Kind.Label(), joinLengths(c.Lengths), strconv.Itoa(c.Count)})
		}
		printTable(w, []string{"Pattern", "Lengths", "Pieces"}, rows, nil)
	}

	if len(plan.Offcuts) > 0 || len(plan.SecondaryOffcuts) > 0 {
		printSection(w, "Offcuts left over")
		var rows [][]string
		for _, o := range plan.Offcuts {
			rows = append(rows, []string{mm(o.Length), strconv.Itoa(o.Count), "stock"})
		}
		for _, o := range plan.SecondaryOffcuts {
			rows = append(rows, []string{mm(o.Length), strconv.Itoa(o.Count), "trimmed offcut"})
		}
		printTable(w, []string{"Length", "Count", "From"}, rows, nil)
	}

	if !doc.Framing.IsZero() {
		renderFraming(w, doc.Framing)
	}
	if doc.Sheets.TotalSheets > 0 {
		renderSheetPlan(w, doc.Sheets)
	}
	if doc.Insulation.TotalPieces > 0 {
		renderInsulation(w, doc.Insulation)
	}
}

func renderFraming(w io.Writer, f model.FramingLayout) {
	printSection(w, "Framing")
	printKeyValue(w, "Room", fmt.Sprintf("%s x %s", mm(f.RoomWidth), mm(f.RoomDepth)))
	printKeyValue(w, "Joist width", mm(f.JoistWidth))
	printKeyValue(w, "Spacing", mm(f.Spacing))
	printNumber(w, "Joists", "%d", f.Columns)
	printNumber(w, "Standard bays", "%d", f.StandardBays)
	if f.LastBayWidth > 0 {
		printKeyValue(w, "Last bay", mm(f.LastBayWidth))
	}
	printKeyValue(w, "Total joist length", mm(f.TotalJoistLength))
}

func renderSheetPlan(w io.Writer, p model.SheetPlan) {
	printSection(w, "Plywood")
	orientation := "long side along the depth"
	if p.Rotated {
		orientation = "long side across the width"
	}
	printKeyValue(w, "Sheet", fmt.Sprintf("%s x %s, %s", mm(p.SheetWidth), mm(p.SheetLength), orientation))
	printNumber(w, "Sheets", "%d (%d x %d)", p.TotalSheets, p.WidthSheets, p.DepthSheets)
	if n := p.PartialCount(); n > 0 {
		printNumber(w, "Trimmed sheets", "%d", n)
	}
	printNumber(w, "Utilization", "%.1f%%", p.Utilization)
	printKeyValue(w, "Waste", fmt.Sprintf("%.2f m²", p.WasteArea()/1e6))

	groups := p.Groups()
	if len(groups) > 1 {
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			cut := "full"
			if g.Partial {
				cut = "trimmed"
			}
			rows = append(rows, []string{mm(g.Width), mm(g.Length), strconv.Itoa(g.Count), cut})
		}
		printTable(w, []string{"Width", "Length", "Sheets", "Cut"}, rows, nil)
	}
}

func renderInsulation(w io.Writer, s model.InsulationSummary) {
	printSection(w, "Insulation")
	printKeyValue(w, "Board", fmt.Sprintf("%s x %s", mm(s.Board.Width), mm(s.Board.Length)))
	printNumber(w, "Pieces", "%d", s.TotalPieces)
	printNumber(w, "Boards", "%d", s.BoardsNeeded)
	printKeyValue(w, "Area", fmt.Sprintf("%.2f m²", s.TotalArea()/1e6))
	if len(s.Pieces) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.Pieces))
	for _, p := range s.Pieces {
		note := ""
		switch {
		case p.Last && p.Remainder:
			note = "last bay, closing piece"
		case p.Last:
			note = "last bay"
		case p.Remainder:
			note = "closing piece"
		}
		rows = append(rows, []string{mm(p.Width), mm(p.Length), strconv.Itoa(p.Count), strconv.Itoa(p.PerBoardWidth), note})
	}
	printTable(w, []string{"Width", "Length", "Count", "Per board", ""}, rows, nil)
}

func renderHeights(w io.Writer, tatami, flooring float64, stacks []model.HeightStack) {
	printTitle(w, "Height stacks for %s", mm(tatami))
	printKeyValue(w, "Flooring", mm(flooring))
	if len(stacks) == 0 {
		printWarning(w, "No joist and plywood combination reaches the tatami height")
		return
	}
	rows := make([][]string, 0, len(stacks))
	for _, s := range stacks {
		rows = append(rows, []string{
			s.Joist.Label(),
			s.Orientation(),
			mm(s.JoistRise),
			mm(s.Plywood),
			mm(s.Total),
			mm(tatami - s.Total),
		})
	}
	exact := func(row int) bool { return model.SameLength(stacks[row].Total, tatami) }
	printTable(w, []string{"Joist", "Laid", "Rise", "Plywood", "Total", "Short by"}, rows, exact)
}

func renderComparison(w io.Writer, target float64, count int, results []engine.ComparisonResult, best engine.ComparisonResult) {
	printTitle(w, "%d pieces of %s", count, mm(target))
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.UnitsUsed),
			mm(r.PurchasedLength),
			mm(r.OffcutLength),
			fmt.Sprintf("%.1f%%", r.WastePercent),
		})
	}
	isBest := func(row int) bool { return model.SameLength(results[row].StockLength, best.StockLength) }
	printTable(w, []string{"Stock", "Units", "Bought", "Offcuts", "Waste"}, rows, isBest)
	printSuccess(w, "Best: %s (%d units)", styleValue.Render(best.Name), best.UnitsUsed)
}

func renderInventory(w io.Writer, inv model.Inventory) {
	printTitle(w, "Inventory")
	printInfo(w, "%s", inv.Describe())

	printSection(w, "Joist sizes")
	if len(inv.Joists) == 0 {
		printInfo(w, "none")
	} else {
		rows := make([][]string, 0, len(inv.Joists))
		for _, j := range inv.Joists {
			rows = append(rows, []string{j.Name, mm(j.Width), mm(j.Height)})
		}
		printTable(w, []string{"Name", "Width", "Height"}, rows, nil)
	}

	printSection(w, "Plywood thicknesses")
	if len(inv.PlywoodThicknesses) == 0 {
		printInfo(w, "none")
	} else {
		parts := make([]string, len(inv.PlywoodThicknesses))
		for i, t := range inv.PlywoodThicknesses {
			parts[i] = mm(t)
		}
		fmt.Fprintln(w, "  "+styleValue.Render(strings.Join(parts, ", ")))
	}

	printSection(w, "Stock lengths")
	if len(inv.Stocks) == 0 {
		printInfo(w, "none")
		return
	}
	rows := make([][]string, 0, len(inv.Stocks))
	for _, s := range inv.Stocks {
		price := ""
		if s.PricePerUnit > 0 {
			price = strconv.FormatFloat(s.PricePerUnit, 'f', 2, 64)
		}
		rows = append(rows, []string{s.Name, mm(s.Length), price})
	}
	printTable(w, []string{"Name", "Length", "Price"}, rows, nil)
}

func renderJob(w io.Writer, job model.Job) {
	printTitle(w, "%s", job.Name)
	if job.ID != "" {
		printKeyValue(w, "ID", job.ID)
	}
	if !job.CreatedAt.IsZero() {
		printKeyValue(w, "Created", job.CreatedAt.Format("2006-01-02 15:04"))
	}

	printSection(w, "Room")
	printKeyValue(w, "Width", mm(job.Room.Width))
	printKeyValue(w, "Depth", mm(job.Room.Depth))

	printSection(w, "Joists")
	size := job.Joist.Size()
	printKeyValue(w, "Size", size.Label())
	if job.Joist.OnSide {
		printKeyValue(w, "Laid", "on side")
	}
	printKeyValue(w, "Stock length", mm(job.Joist.StockLength))
	printKeyValue(w, "Spacing", mm(job.Joist.Spacing))
	if job.Joist.EcoMode {
		printKeyValue(w, "Eco mode", "on")
	}
	if len(job.Joist.CompareLengths) > 0 {
		printKeyValue(w, "Compare lengths", joinLengths(job.Joist.CompareLengths))
	}

	printSection(w, "Sheets")
	printKeyValue(w, "Plywood", fmt.Sprintf("%s x %s", mm(job.Plywood.Width), mm(job.Plywood.Length)))
	printKeyValue(w, "Insulation", fmt.Sprintf("%s x %s", mm(job.Insulation.Width), mm(job.Insulation.Length)))

	printSection(w, "Height")
	printKeyValue(w, "Tatami", mm(job.Height.Tatami))
	printKeyValue(w, "Flooring", mm(job.Height.Flooring))
	if len(job.Height.PlywoodThicknesses) > 0 {
		printKeyValue(w, "Plywood thicknesses", joinLengths(job.Height.PlywoodThicknesses))
	}
}
