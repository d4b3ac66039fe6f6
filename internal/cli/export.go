package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/railgen/internal/engine"
	"github.com/piwi3910/railgen/internal/export"
	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
)

// exportTargets holds the output paths of the fabrication exports. An empty
// path skips that format.
type exportTargets struct {
	dxf    string
	bom    string
	csv    string
	pdf    string
	labels string
	report string
}

// any reports whether at least one export format was requested.
func (t exportTargets) any() bool {
	return t.dxf != "" || t.bom != "" || t.csv != "" ||
		t.pdf != "" || t.labels != "" || t.report != ""
}

// addExportFlags registers the shared export flags on a command.
func addExportFlags(cmd *cobra.Command, t *exportTargets) {
	flags := cmd.Flags()
	flags.StringVar(&t.dxf, "dxf", "", "write a DXF drawing to this path")
	flags.StringVar(&t.bom, "bom", "", "write a cut list workbook (.xlsx) to this path")
	flags.StringVar(&t.csv, "csv", "", "write a cut list CSV to this path")
	flags.StringVar(&t.pdf, "pdf", "", "write a PDF drawing to this path")
	flags.StringVar(&t.labels, "labels", "", "write a QR label sheet (.pdf) to this path")
	flags.StringVar(&t.report, "report", "", "write an HTML report to this path")
}

// newExportCmd creates the export command, which re-exports a saved project
// without regenerating it.
func newExportCmd() *cobra.Command {
	var targets exportTargets

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Export a saved project to fabrication formats",
		Long: `Export a saved project to fabrication formats.

At least one format flag is required. The project file is not modified.

Examples:
  railgen export railing.json --dxf railing.dxf --bom cuts.xlsx
  railgen export railing.json --pdf drawing.pdf --labels labels.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c.Context(), args[0], targets)
		},
	}

	addExportFlags(cmd, &targets)

	return cmd
}

func runExport(ctx context.Context, path string, targets exportTargets) error {
	logger := loggerFromContext(ctx)

	if !targets.any() {
		return fmt.Errorf("no export format requested (use --dxf, --bom, --csv, --pdf, --labels or --report)")
	}

	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	infill := model.Infill{}
	if proj.Infill != nil {
		infill = *proj.Infill
	} else {
		logger.Warn("Project has no generated infill, exporting the frame only")
	}
	logger.Info("Project loaded", "name", proj.Name, "rods", len(infill.Rods))

	return runExports(ctx, targets, proj.Frame, infill, proj.Params, nil)
}

// runExports writes every requested export format. The first failure aborts
// the remaining formats.
func runExports(ctx context.Context, t exportTargets, frame *model.Frame, infill model.Infill, params model.GenerationParams, history []engine.ProgressUpdate) error {
	logger := loggerFromContext(ctx)

	jobs := []struct {
		path string
		kind string
		run  func(string) error
	}{
		{t.dxf, "DXF drawing", func(p string) error { return export.ExportDXF(p, frame, infill) }},
		{t.bom, "cut list workbook", func(p string) error { return export.ExportBOMXLSX(p, frame, infill) }},
		{t.csv, "cut list CSV", func(p string) error { return export.ExportBOMCSV(p, frame, infill) }},
		{t.pdf, "PDF drawing", func(p string) error { return export.ExportPDF(p, frame, infill, params) }},
		{t.labels, "label sheet", func(p string) error { return export.ExportLabels(p, infill) }},
		{t.report, "HTML report", func(p string) error { return export.ExportReport(p, frame, infill, history) }},
	}

	for _, job := range jobs {
		if job.path == "" {
			continue
		}
		sw := newStopwatch(logger)
		if err := job.run(job.path); err != nil {
			return fmt.Errorf("export %s: %w", job.kind, err)
		}
		sw.done("Exported "+job.kind, "path", job.path)
	}
	return nil
}
