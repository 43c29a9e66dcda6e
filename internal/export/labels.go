package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// LabelInfo holds the data encoded into each stock unit label's QR code.
type LabelInfo struct {
	Job         string    `json:"job,omitempty"`
	UnitID      string    `json:"unit"`
	UnitNumber  int       `json:"n"`
	StockLength float64   `json:"stock_mm"`
	Cuts        []float64 `json:"cuts_mm"`          // Target pieces in cutting order
	Offcut      float64   `json:"offcut_mm"`        // Length left on the unit
	Uncut       bool      `json:"uncut,omitempty"`  // Used whole
	Reused      []string  `json:"reused,omitempty"` // Offcut parts joined into recovered pieces
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per stock unit, so each length
// of lumber can be marked before cutting. Labels are laid out on a standard label
// sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path, job string, plan model.CuttingPlan) error {
	labels := CollectLabelInfos(job, plan)
	if len(labels) == 0 {
		return fmt.Errorf("no stock units to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.UnitID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Unit ids are unique within a plan
	imgName := "qr_" + info.UnitID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("#%d  %.0f mm", info.UnitNumber, info.StockLength), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, info.cutText(), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, truncate(pdf, info.UnitID+" "+info.Job, textW), "", 1, "L", false, 0, "")

	if len(info.Reused) > 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Keep offcut for joining", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// cutText describes what happens to the unit, e.g. "Cut 1200 + 600, offcut 20".
func (info LabelInfo) cutText() string {
	if info.Uncut {
		return "Use whole"
	}
	parts := make([]string, len(info.Cuts))
	for i, c := range info.Cuts {
		parts[i] = fmt.Sprintf("%.0f", c)
	}
	text := "Cut " + strings.Join(parts, " + ")
	if info.Offcut > 0 {
		text += fmt.Sprintf(", offcut %.0f", info.Offcut)
	}
	return text
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts one label per stock unit of the plan, in unit order.
func CollectLabelInfos(job string, plan model.CuttingPlan) []LabelInfo {
	reused := make(map[string]bool)
	for _, r := range plan.Recovered {
		for _, id := range r.SourcePartIDs {
			reused[id] = true
		}
	}

	labels := make([]LabelInfo, 0, len(plan.StockUnits))
	for i, u := range plan.StockUnits {
		info := LabelInfo{
			Job:         job,
			UnitID:      u.ID,
			UnitNumber:  i + 1,
			StockLength: u.Length,
			Cuts:        []float64{},
			Uncut:       len(u.Parts) > 0,
		}
		for _, p := range u.Parts {
			if p.Type != model.PartUnprocessed {
				info.Uncut = false
			}
			switch p.Type {
			case model.PartTarget, model.PartTargetFromOffcut:
				info.Cuts = append(info.Cuts, p.Length)
			case model.PartOffcut:
				info.Offcut += p.Length
				if reused[p.ID] {
					info.Reused = append(info.Reused, p.ID)
				}
			}
		}
		labels = append(labels, info)
	}
	return labels
}
