package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/railgen/internal/model"
)

func TestExportDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "railing.dxf")

	err := ExportDXF(path, buildTestFrame(t), buildTestInfill())
	if err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("DXF file is empty")
	}
}

func TestExportDXF_NamesAllLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layers.dxf")

	if err := ExportDXF(path, buildTestFrame(t), buildTestInfill()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read DXF back: %v", err)
	}
	content := string(data)
	for _, name := range []string{"FRAME", "INFILL_LAYER_1", "INFILL_LAYER_2"} {
		if !strings.Contains(content, name) {
			t.Errorf("DXF output missing layer %q", name)
		}
	}
}

func TestExportDXF_NoFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.dxf")

	if err := ExportDXF(path, nil, model.Infill{}); err == nil {
		t.Fatal("expected error for missing frame, got nil")
	}
}

func TestInfillLayerNumbers_SortedDistinct(t *testing.T) {
	infill := model.Infill{Rods: []model.Rod{
		{Layer: 3}, {Layer: 1}, {Layer: 3}, {Layer: 2}, {Layer: 1},
	}}

	got := infillLayerNumbers(infill)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected layers %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected layers %v, got %v", want, got)
		}
	}
}
