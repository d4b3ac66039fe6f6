package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

func TestExportBOMXLSX_RowsAndTotals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.xlsx")

	frame := buildTestFrame(t)
	infill := buildTestInfill()
	if err := ExportBOMXLSX(path, frame, infill); err != nil {
		t.Fatalf("ExportBOMXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(bomSheetName)
	if err != nil {
		t.Fatalf("failed to read sheet %q: %v", bomSheetName, err)
	}

	wantRows := 1 + len(frame.Rods) + len(infill.Rods) + 1
	if len(rows) != wantRows {
		t.Fatalf("expected %d rows, got %d", wantRows, len(rows))
	}
	if rows[0][0] != bomHeader[0] {
		t.Errorf("expected header %q, got %q", bomHeader[0], rows[0][0])
	}
	if rows[1][1] != "0" {
		t.Errorf("expected frame rods first (layer 0), got layer %q", rows[1][1])
	}
	last := rows[len(rows)-1]
	if last[0] != "TOTAL" {
		t.Errorf("expected totals row last, got %q", last[0])
	}
}

func TestExportBOMXLSX_NoRods(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	if err := ExportBOMXLSX(path, nil, model.Infill{}); err == nil {
		t.Fatal("expected error for empty cut list, got nil")
	}
}

func TestExportBOMCSV_RowsAndTotals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.csv")

	frame := buildTestFrame(t)
	infill := buildTestInfill()
	if err := ExportBOMCSV(path, frame, infill); err != nil {
		t.Fatalf("ExportBOMCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	wantRows := 1 + len(frame.Rods) + len(infill.Rods) + 1
	if len(records) != wantRows {
		t.Fatalf("expected %d records, got %d", wantRows, len(records))
	}
	if records[0][0] != bomHeader[0] {
		t.Errorf("expected header %q, got %q", bomHeader[0], records[0][0])
	}

	total := records[len(records)-1]
	if total[0] != "TOTAL" {
		t.Errorf("expected totals row last, got %q", total[0])
	}
	if total[6] == "" || total[9] == "" {
		t.Error("totals row missing length or weight")
	}
}

func TestExportBOMCSV_InfillOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "infill.csv")

	infill := buildTestInfill()
	if err := ExportBOMCSV(path, nil, infill); err != nil {
		t.Fatalf("ExportBOMCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	wantRows := 1 + len(infill.Rods) + 1
	if len(records) != wantRows {
		t.Fatalf("expected %d records, got %d", wantRows, len(records))
	}
	if records[1][1] != "1" {
		t.Errorf("expected first record on layer 1, got layer %q", records[1][1])
	}
}

func TestBOMTotals(t *testing.T) {
	rods := []model.Rod{
		model.NewBoundaryRod(geometry.Point2D{}, geometry.Point2D{X: 200}, 0.5),
		model.NewBoundaryRod(geometry.Point2D{X: 200}, geometry.Point2D{X: 200, Y: 100}, 0.5),
	}
	length, weight := bomTotals(rods)
	if length != 300 {
		t.Errorf("expected length 300, got %g", length)
	}
	if weight != 1.5 {
		t.Errorf("expected weight 1.5, got %g", weight)
	}
}
