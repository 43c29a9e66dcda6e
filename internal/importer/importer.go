// Package importer reads joist size lists from plain text, CSV and Excel files,
// and room outlines from DXF drawings. It supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TatamiCut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Joists   []model.JoistSize
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name   int
	Width  int
	Height int
}

// positionalMapping is the column order of the plain text format: width, height, name.
var positionalMapping = ColumnMapping{Width: 0, Height: 1, Name: 2}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":   {"name", "label", "joist", "size", "description", "desc", "item"},
	"width":  {"width", "w", "breadth"},
	"height": {"height", "h", "rise"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// width, height, name mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Width: -1, Height: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDimension reads a positive millimetre value, accepting a trailing "mm".
func parseDimension(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "mm"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}

// parseRow extracts a JoistSize from a row using the given column mapping.
// Returns the joist size and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.JoistSize, string) {
	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.JoistSize{}, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := parseDimension(widthStr)
	if err != nil {
		return model.JoistSize{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.JoistSize{}, fmt.Sprintf("%s: Missing height value", rowLabel)
	}
	height, err := parseDimension(heightStr)
	if err != nil {
		return model.JoistSize{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr)
	}

	return model.NewJoistSize(getCell(row, mapping.Name), width, height), ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseJoistSizes reads one joist size per line in the form "width,height[,name]".
// Blank lines and lines starting with '#' are skipped.
func ParseJoistSizes(text string) ImportResult {
	var rows [][]string
	var lines []int
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, strings.SplitN(line, ",", 3))
		lines = append(lines, i+1)
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{"No joist sizes found"}}
	}

	result := ImportResult{}
	for i, row := range rows {
		joist, errMsg := parseRow(row, positionalMapping, fmt.Sprintf("Line %d", lines[i]))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Joists = append(result.Joists, joist)
	}
	return result
}

// ParseThicknesses reads a comma or whitespace separated list of plywood thicknesses.
// Values that are not positive numbers are skipped.
func ParseThicknesses(text string) []float64 {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	thicknesses := []float64{}
	for _, f := range fields {
		if v, err := parseDimension(f); err == nil {
			thicknesses = append(thicknesses, v)
		}
	}
	return thicknesses
}

// ImportCSV imports joist sizes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports joist sizes from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports joist sizes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the importer from the file extension: .csv, .xlsx, or plain text.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
		}
		return ParseJoistSizes(string(data))
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into joist sizes.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := parseDimension(getCell(rows[0], 0)); err != nil && !isEmptyRow(rows[0]) {
		// First column is not numeric: an unrecognized header, skip it but keep
		// the positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		joist, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Joists = append(result.Joists, joist)
	}

	return result
}
