// Package export writes generation results to the fabrication formats:
// DXF drawings, cut list workbooks, PDF drawings, QR label sheets and an
// HTML report.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// layerColor represents an RGB color for an infill layer.
type layerColor struct {
	R, G, B int
}

// drawingLayerColors mirrors the DXF layer color cycle: red, green, cyan,
// blue, magenta.
var drawingLayerColors = []layerColor{
	{R: 211, G: 47, B: 47},
	{R: 56, G: 142, B: 60},
	{R: 0, G: 151, B: 167},
	{R: 25, G: 118, B: 210},
	{R: 123, G: 31, B: 162},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the railing to a PDF document: a scaled drawing page
// followed by a summary page with per-layer breakdown and the generation
// settings.
func ExportPDF(path string, frame *model.Frame, infill model.Infill, params model.GenerationParams) error {
	if frame == nil || len(frame.Rods) == 0 {
		return fmt.Errorf("no frame to export")
	}
	boundary, err := frame.Boundary()
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	bbMin, bbMax := boundary.BoundingBox()

	pdf.AddPage()
	renderDrawingPage(pdf, frame, infill, bbMin, bbMax)

	pdf.AddPage()
	renderSummaryPage(pdf, frame, infill, params)

	return pdf.OutputFileAndClose(path)
}

// renderDrawingPage draws the frame and infill scaled into the page.
func renderDrawingPage(pdf *fpdf.Fpdf, frame *model.Frame, infill model.Infill, bbMin, bbMax geometry.Point2D) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Railing %.0f x %.0f cm", bbMax.X-bbMin.X, bbMax.Y-bbMin.Y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Infill rods: %d | Total length: %.1f cm | Weight: %.2f kg | Fitness: %s",
		len(infill.Rods), infill.TotalLengthCm(), infill.TotalWeightKg(), fitnessLabel(infill))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	spanX := bbMax.X - bbMin.X
	spanY := bbMax.Y - bbMin.Y
	scale := math.Min(drawWidth/spanX, drawHeight/spanY)

	canvasW := spanX * scale
	canvasH := spanY * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Geometry has y pointing up, the page has y pointing down.
	toPage := func(x, y float64) (float64, float64) {
		return offsetX + (x-bbMin.X)*scale, offsetY + (bbMax.Y-y)*scale
	}

	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.8)
	for _, rod := range frame.Rods {
		x1, y1 := toPage(rod.Start.X, rod.Start.Y)
		x2, y2 := toPage(rod.End.X, rod.End.Y)
		pdf.Line(x1, y1, x2, y2)
	}

	pdf.SetLineWidth(0.4)
	for _, rod := range infill.Rods {
		col := drawingLayerColors[(rod.Layer-1)%len(drawingLayerColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		x1, y1 := toPage(rod.Start.X, rod.Start.Y)
		x2, y2 := toPage(rod.End.X, rod.End.Y)
		pdf.Line(x1, y1, x2, y2)
	}

	drawLayerLegend(pdf, infill, offsetY+canvasH+5)
}

// drawLayerLegend renders a color swatch and rod count per infill layer.
func drawLayerLegend(pdf *fpdf.Fpdf, infill model.Infill, startY float64) {
	layers := infillLayerNumbers(infill)
	if len(layers) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Layers:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	for _, layer := range layers {
		col := drawingLayerColors[(layer-1)%len(drawingLayerColors)]
		label := fmt.Sprintf("layer %d (%d rods)", layer, len(infill.LayerRods(layer)))
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 4
	}
}

// renderSummaryPage draws overall statistics, the per-layer breakdown table
// and the generation settings.
func renderSummaryPage(pdf *fpdf.Fpdf, frame *model.Frame, infill model.Infill, params model.GenerationParams) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Railing Generation Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall", "", 0, "L", false, 0, "")
	y += 9

	frameLength, frameWeight := bomTotals(frame.Rods)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Infill Rods", fmt.Sprintf("%d of %d", len(infill.Rods), params.NumRods)},
		{"Complete", fmt.Sprintf("%t", infill.IsComplete)},
		{"Fitness", fitnessLabel(infill)},
		{"Frame Length", fmt.Sprintf("%.1f cm (%.2f kg)", frameLength, frameWeight)},
		{"Infill Length", fmt.Sprintf("%.1f cm (%.2f kg)", infill.TotalLengthCm(), infill.TotalWeightKg())},
		{"Placement Iterations", fmt.Sprintf("%d", infill.IterationCount)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layer Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 25, 45, 40, 45}
	headers := []string{"Layer", "Rods", "Total Length", "Weight", "Avg Angle"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layer := range infillLayerNumbers(infill) {
		rods := infill.LayerRods(layer)
		length, weight := bomTotals(rods)
		angleSum := 0.0
		for _, rod := range rods {
			angleSum += rod.AngleFromVerticalDeg()
		}
		avgAngle := 0.0
		if len(rods) > 0 {
			avgAngle = angleSum / float64(len(rods))
		}

		rowData := []string{
			fmt.Sprintf("%d", layer),
			fmt.Sprintf("%d", len(rods)),
			fmt.Sprintf("%.1f cm", length),
			fmt.Sprintf("%.2f kg", weight),
			fmt.Sprintf("%.1f deg", avgAngle),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Generation Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Rods / Layers", fmt.Sprintf("%d / %d", params.NumRods, params.NumLayers)},
		{"Rod Length", fmt.Sprintf("%.0f - %.0f cm", params.MinRodLengthCm, params.MaxRodLengthCm)},
		{"Max Angle", fmt.Sprintf("%.0f deg", params.MaxAngleDeviationDeg)},
		{"Direction Range", fmt.Sprintf("%.0f to %.0f deg", params.MainDirectionRangeMinDeg, params.MainDirectionRangeMaxDeg)},
		{"Anchor Spacing", fmt.Sprintf("%.0f / %.0f cm", params.MinAnchorDistanceVerticalCm, params.MinAnchorDistanceOtherCm)},
		{"Rod Weight", fmt.Sprintf("%.2f kg/m", params.WeightPerMeter)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by railgen - Railing Infill Generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// fitnessLabel formats the fitness score, or a dash when the infill was
// never scored.
func fitnessLabel(infill model.Infill) string {
	if infill.FitnessScore == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *infill.FitnessScore)
}
