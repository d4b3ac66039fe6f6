package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/railgen/internal/model"
)

// bomSheetName is the worksheet holding the cut list.
const bomSheetName = "Cut List"

// bomHeader lists the cut list columns in output order.
var bomHeader = []string{
	"Rod", "Layer", "Start X (cm)", "Start Y (cm)", "End X (cm)", "End Y (cm)",
	"Length (cm)", "Start Cut (deg)", "End Cut (deg)", "Weight (kg)",
}

// ExportBOMXLSX writes the cut list workbook: one row per rod, frame rods
// first, with a totals row at the bottom.
func ExportBOMXLSX(path string, frame *model.Frame, infill model.Infill) error {
	rods := bomRods(frame, infill)
	if len(rods) == 0 {
		return fmt.Errorf("no rods to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, bomSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sheet = bomSheetName

	setCell := func(col, row int, value any) error {
		ref, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, ref, value)
	}

	for col, h := range bomHeader {
		if err := setCell(col+1, 1, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, rod := range rods {
		values := []any{
			rod.ID, rod.Layer,
			rod.Start.X, rod.Start.Y, rod.End.X, rod.End.Y,
			rod.Length(), rod.StartCutAngleDeg, rod.EndCutAngleDeg, rod.WeightKg(),
		}
		for col, v := range values {
			if err := setCell(col+1, row, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
		row++
	}

	totalLength, totalWeight := bomTotals(rods)
	if err := setCell(1, row, "TOTAL"); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if err := setCell(7, row, totalLength); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if err := setCell(10, row, totalWeight); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	return f.SaveAs(path)
}

// ExportBOMCSV writes the same cut list as a CSV file.
func ExportBOMCSV(path string, frame *model.Frame, infill model.Infill) error {
	rods := bomRods(frame, infill)
	if len(rods) == 0 {
		return fmt.Errorf("no rods to export")
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(bomHeader); err != nil {
		return err
	}
	for _, rod := range rods {
		record := []string{
			rod.ID,
			strconv.Itoa(rod.Layer),
			formatCm(rod.Start.X), formatCm(rod.Start.Y),
			formatCm(rod.End.X), formatCm(rod.End.Y),
			formatCm(rod.Length()),
			formatDeg(rod.StartCutAngleDeg), formatDeg(rod.EndCutAngleDeg),
			formatKg(rod.WeightKg()),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	totalLength, totalWeight := bomTotals(rods)
	totals := []string{"TOTAL", "", "", "", "", "", formatCm(totalLength), "", "", formatKg(totalWeight)}
	if err := w.Write(totals); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// bomRods flattens frame and infill rods into cut list order, frame first.
func bomRods(frame *model.Frame, infill model.Infill) []model.Rod {
	if frame == nil {
		return infill.Rods
	}
	rods := make([]model.Rod, 0, len(frame.Rods)+len(infill.Rods))
	rods = append(rods, frame.Rods...)
	rods = append(rods, infill.Rods...)
	return rods
}

func bomTotals(rods []model.Rod) (lengthCm, weightKg float64) {
	for _, rod := range rods {
		lengthCm += rod.Length()
		weightKg += rod.WeightKg()
	}
	return lengthCm, weightKg
}

func formatCm(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
