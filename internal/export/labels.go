package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/railgen/internal/model"
)

// LabelInfo holds the data encoded into each rod label's QR code.
type LabelInfo struct {
	RodID       string  `json:"id"`
	Layer       int     `json:"layer"`
	LengthCm    float64 `json:"length_cm"`
	StartCutDeg float64 `json:"start_cut_deg"`
	EndCutDeg   float64 `json:"end_cut_deg"`
	WeightKg    float64 `json:"weight_kg"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per infill rod.
// Each label carries the rod id, length, cut angles and layer, plus a QR
// code encoding the same data as JSON so a phone can pull it up at the
// saw. Labels are laid out on a standard label sheet format (Avery 5160 /
// 3 columns x 10 rows on US Letter).
func ExportLabels(path string, infill model.Infill) error {
	labels := CollectLabelInfos(infill)
	if len(labels) == 0 {
		return fmt.Errorf("no rods to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.RodID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s", info.RodID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Rod id (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	rodID := info.RodID
	if pdf.GetStringWidth(rodID) > textW {
		for len(rodID) > 0 && pdf.GetStringWidth(rodID+"...") > textW {
			rodID = rodID[:len(rodID)-1]
		}
		rodID += "..."
	}
	pdf.CellFormat(textW, 4.5, rodID, "", 1, "L", false, 0, "")

	// Length and weight
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f cm / %.3f kg", info.LengthCm, info.WeightKg)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Cut angles
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	cuts := fmt.Sprintf("Cuts %.1f\xb0 / %.1f\xb0", info.StartCutDeg, info.EndCutDeg)
	pdf.CellFormat(textW, 3, cuts, "", 1, "L", false, 0, "")

	// Layer tag in the layer's drawing color
	col := drawingLayerColors[(info.Layer-1)%len(drawingLayerColors)]
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(col.R, col.G, col.B)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Layer %d", info.Layer), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a generated infill
// for use in testing or alternative export formats.
func CollectLabelInfos(infill model.Infill) []LabelInfo {
	var labels []LabelInfo
	for _, rod := range infill.Rods {
		labels = append(labels, LabelInfo{
			RodID:       rod.ID,
			Layer:       rod.Layer,
			LengthCm:    rod.Length(),
			StartCutDeg: rod.StartCutAngleDeg,
			EndCutDeg:   rod.EndCutAngleDeg,
			WeightKg:    rod.WeightKg(),
		})
	}
	return labels
}
