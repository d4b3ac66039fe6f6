package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
	"github.com/piwi3910/railgen/internal/shapes"
)

func TestCompareCommandPrintsAllScenarios(t *testing.T) {
	dir := t.TempDir()

	// Small budgets keep the scenario runs quick.
	params := model.DefaultGenerationParams()
	params.NumRods = 4
	params.NumLayers = 1
	params.MinRodLengthCm = 20
	params.MaxEvaluationAttempts = 1
	params.MaxIterations = 200
	params.MaxDurationSec = 5
	params.MaxEvaluationDurationSec = 5
	params.MinAcceptableFitness = 0.1

	shapeParams, err := shapes.DefaultParams(shapes.TypeRectangular)
	if err != nil {
		t.Fatalf("shape defaults: %v", err)
	}
	frame, err := shapes.Build(shapeParams)
	if err != nil {
		t.Fatalf("build frame: %v", err)
	}

	proj := project.New("compare-test", frame, params)
	proj.Seed = 42
	path := filepath.Join(dir, "project.json")
	if err := project.Save(path, proj); err != nil {
		t.Fatalf("save project: %v", err)
	}

	cmd := newCompareCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path})

	if err := cmd.ExecuteContext(quietContext()); err != nil {
		t.Fatalf("compare: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "SCENARIO") {
		t.Error("output missing the table header")
	}
	for _, name := range []string{"Current Settings", "Quality Evaluator", "Three Layers"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing scenario %q", name)
		}
	}
}

func TestCompareCommandMissingProject(t *testing.T) {
	cmd := newCompareCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.json")})

	if err := cmd.ExecuteContext(quietContext()); err == nil {
		t.Fatal("expected an error for a missing project file")
	}
}
