package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
	"github.com/piwi3910/railgen/internal/shapes"
)

// saveTestProject writes a small generated project to disk and returns its
// path.
func saveTestProject(t *testing.T, dir string) string {
	t.Helper()

	params, err := shapes.DefaultParams(shapes.TypeRectangular)
	if err != nil {
		t.Fatalf("shape defaults: %v", err)
	}
	params.WidthCm, params.HeightCm = 100, 100
	frame, err := shapes.Build(params)
	if err != nil {
		t.Fatalf("build frame: %v", err)
	}

	infill := model.Infill{
		Rods: []model.Rod{
			model.NewRod(geometry.Point2D{X: 30, Y: 0}, geometry.Point2D{X: 30, Y: 100}, 1, 0.3, 0, 0),
			model.NewRod(geometry.Point2D{X: 70, Y: 0}, geometry.Point2D{X: 70, Y: 100}, 2, 0.3, 0, 0),
		},
		AnchorPoints: []model.AnchorPoint{},
		IsComplete:   false,
	}

	proj := project.New("export-test", frame, model.DefaultGenerationParams())
	proj.SetResult(infill, model.GenerationStatistics{RodsRequested: 2, RodsCreated: 2})

	path := filepath.Join(dir, "project.json")
	if err := project.Save(path, proj); err != nil {
		t.Fatalf("save project: %v", err)
	}
	return path
}

func TestExportCommandWritesRequestedFormats(t *testing.T) {
	dir := t.TempDir()
	projPath := saveTestProject(t, dir)

	dxfPath := filepath.Join(dir, "out.dxf")
	csvPath := filepath.Join(dir, "out.csv")
	reportPath := filepath.Join(dir, "report.html")

	cmd := newExportCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{projPath, "--dxf", dxfPath, "--csv", csvPath, "--report", reportPath})

	if err := cmd.ExecuteContext(quietContext()); err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, path := range []string{dxfPath, csvPath, reportPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("export not written: %v", err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(path))
		}
	}
}

func TestExportCommandRequiresFormat(t *testing.T) {
	dir := t.TempDir()
	projPath := saveTestProject(t, dir)

	cmd := newExportCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{projPath})

	err := cmd.ExecuteContext(quietContext())
	if err == nil {
		t.Fatal("expected an error when no format flag is given")
	}
	if !strings.Contains(err.Error(), "no export format requested") {
		t.Errorf("error = %q, want mention of the missing format flags", err)
	}
}

func TestExportCommandMissingProject(t *testing.T) {
	cmd := newExportCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.json"), "--csv", "out.csv"})

	if err := cmd.ExecuteContext(quietContext()); err == nil {
		t.Fatal("expected an error for a missing project file")
	}
}

func TestExportCommandFrameOnlyProject(t *testing.T) {
	dir := t.TempDir()

	params, err := shapes.DefaultParams(shapes.TypeRectangular)
	if err != nil {
		t.Fatalf("shape defaults: %v", err)
	}
	frame, err := shapes.Build(params)
	if err != nil {
		t.Fatalf("build frame: %v", err)
	}
	proj := project.New("frame-only", frame, model.DefaultGenerationParams())
	projPath := filepath.Join(dir, "frame-only.json")
	if err := project.Save(projPath, proj); err != nil {
		t.Fatalf("save project: %v", err)
	}

	dxfPath := filepath.Join(dir, "frame.dxf")
	cmd := newExportCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{projPath, "--dxf", dxfPath})

	if err := cmd.ExecuteContext(quietContext()); err != nil {
		t.Fatalf("export without infill: %v", err)
	}
	if _, err := os.Stat(dxfPath); err != nil {
		t.Errorf("DXF not written: %v", err)
	}
}
