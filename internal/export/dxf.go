package export

import (
	"fmt"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/railgen/internal/model"
)

// frameLayerName is the DXF layer carrying the boundary rods.
const frameLayerName = "FRAME"

// infillLayerColors cycles through the AutoCAD color indices assigned to
// INFILL_LAYER_N layers: red, green, cyan, blue, magenta.
var infillLayerColors = []color.ColorNumber{
	color.Red,
	color.Green,
	color.Cyan,
	color.Blue,
	color.Magenta,
}

// ExportDXF writes the frame and infill as LINE entities. The frame goes on
// layer FRAME in white; each infill layer gets its own INFILL_LAYER_N layer
// with a color from the cycle.
func ExportDXF(path string, frame *model.Frame, infill model.Infill) error {
	if frame == nil || len(frame.Rods) == 0 {
		return fmt.Errorf("no frame to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(frameLayerName, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", frameLayerName, err)
	}
	for _, rod := range frame.Rods {
		d.Line(rod.Start.X, rod.Start.Y, 0, rod.End.X, rod.End.Y, 0)
	}

	for _, layer := range infillLayerNumbers(infill) {
		name := fmt.Sprintf("INFILL_LAYER_%d", layer)
		col := infillLayerColors[(layer-1)%len(infillLayerColors)]
		if _, err := d.AddLayer(name, col, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", name, err)
		}
		for _, rod := range infill.LayerRods(layer) {
			d.Line(rod.Start.X, rod.Start.Y, 0, rod.End.X, rod.End.Y, 0)
		}
	}

	return d.SaveAs(path)
}

// infillLayerNumbers returns the distinct infill layer numbers, ascending.
func infillLayerNumbers(infill model.Infill) []int {
	seen := make(map[int]bool)
	for _, rod := range infill.Rods {
		seen[rod.Layer] = true
	}
	layers := make([]int, 0, len(seen))
	for layer := range seen {
		layers = append(layers, layer)
	}
	sort.Ints(layers)
	return layers
}
