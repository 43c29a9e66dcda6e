package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success, cut pieces
	colorYellow = lipgloss.Color("220") // Amber - warnings, reused offcuts
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - pieces from offcuts
	colorBrown  = lipgloss.Color("137") // Uncut stock
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).MarginTop(1)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(22)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleBest    = lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// setColorMode applies the "auto", "always" or "never" color preference.
func setColorMode(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// =============================================================================
// Status Output
// =============================================================================

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, styleSection.Render(title))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a written file path.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printNumber prints a labeled numeric value.
func printNumber(w io.Writer, key string, format string, args ...any) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleNumber.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Tables
// =============================================================================

// printTable renders rows under headers. Rows for which highlight returns true
// are drawn in the success color.
func printTable(w io.Writer, headers []string, rows [][]string, highlight func(row int) bool) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case highlight != nil && highlight(row):
				return styleBest
			default:
				return styleCell
			}
		})
	fmt.Fprintln(w, t.Render())
}
