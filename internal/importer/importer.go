// Package importer reads railing frames and parameter presets from external
// files: DXF drawings, CSV or Excel corner tables, and TOML preset files.
// Table imports support automatic delimiter detection and case-insensitive
// header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// connectToleranceCm is the maximum gap between endpoints that still counts
// as the same corner when chaining imported segments.
const connectToleranceCm = 0.01

// ImportResult holds the outcome of a frame import. Frame is nil when the
// import failed; Errors then says why. Warnings report rows or entities that
// were skipped without sinking the whole import.
type ImportResult struct {
	Frame    *model.Frame
	Errors   []string
	Warnings []string
}

// ColumnMapping maps the corner coordinate columns to their indices.
type ColumnMapping struct {
	X int
	Y int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"x": {"x", "x_cm", "x (cm)", "x-coordinate", "easting"},
	"y": {"y", "y_cm", "y (cm)", "y-coordinate", "northing"},
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

		// Score: count how many rows have the same column count as the first row
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
// It performs case-insensitive matching against known aliases for each
// coordinate. Returns the mapping and true if a header was detected, or the
// positional mapping (x, y) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{X: -1, Y: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{X: 0, Y: 1}, false
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

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseCornerRow extracts a corner point from a row using the given mapping.
// Returns the point and an error message ("" on success).
func parseCornerRow(row []string, mapping ColumnMapping, rowLabel string) (geometry.Point2D, string) {
	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return geometry.Point2D{}, fmt.Sprintf("%s: Missing x value", rowLabel)
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr)
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return geometry.Point2D{}, fmt.Sprintf("%s: Missing y value", rowLabel)
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return geometry.Point2D{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr)
	}

	return geometry.Point2D{X: x, Y: y}, ""
}

// ImportFrameCSV reads a frame from a CSV table of boundary corner points in
// boundary order; the closing edge back to the first corner is implied.
// It automatically detects the delimiter and maps columns by header names.
func ImportFrameCSV(path string, weightPerMeter float64) ImportResult {
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

	return frameFromRows(records, "Line", weightPerMeter, result.Warnings)
}

// ImportFrameXLSX reads a frame from the first sheet of an Excel workbook,
// using the same corner-table layout as ImportFrameCSV.
func ImportFrameXLSX(path string, weightPerMeter float64) ImportResult {
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

	return frameFromRows(rows, "Row", weightPerMeter, nil)
}

// frameFromRows is the shared import logic for CSV and Excel corner tables.
// It detects headers, parses each row into a corner and closes the loop.
func frameFromRows(rows [][]string, rowPrefix string, weightPerMeter float64, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// No recognized header: if the first row is not numeric, skip it as
		// an unrecognized header and keep the positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	var corners []geometry.Point2D
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		corner, errMsg := parseCornerRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		// Collapse corners that repeat their predecessor.
		if len(corners) > 0 && pointsClose(corners[len(corners)-1], corner, connectToleranceCm) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate corner skipped", rowLabel))
			continue
		}
		corners = append(corners, corner)
	}

	if len(result.Errors) > 0 {
		return result
	}

	// A repeated first corner at the end is the explicit closing form.
	if len(corners) >= 2 && pointsClose(corners[0], corners[len(corners)-1], connectToleranceCm) {
		corners = corners[:len(corners)-1]
	}

	frame, err := frameFromCorners(corners, weightPerMeter)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Frame = frame
	return result
}

// frameFromCorners builds a frame from corners in boundary order, adding the
// closing edge back to the first corner.
func frameFromCorners(corners []geometry.Point2D, weightPerMeter float64) (*model.Frame, error) {
	if len(corners) < 3 {
		return nil, fmt.Errorf("%w: %d corners, need at least 3", model.ErrInvalidFrame, len(corners))
	}
	rods := make([]model.Rod, len(corners))
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		rods[i] = model.NewBoundaryRod(c, next, weightPerMeter)
	}
	return model.NewFrame(rods)
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b geometry.Point2D, tolerance float64) bool {
	return a.Distance(b) <= tolerance
}
