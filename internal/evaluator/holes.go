package evaluator

import (
	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// IdentifyHoles returns the enclosed regions ("holes") bounded by the frame
// and infill rods. The combined segments are noded first because rods on
// different layers legitimately cross each other; polygonizing the noded
// arrangement then yields the faces between them. An empty infill yields a
// single hole: the frame interior itself.
func IdentifyHoles(infill *model.Infill, frame *model.Frame) ([]geometry.Ring, error) {
	if _, err := frame.Boundary(); err != nil {
		return nil, err
	}
	segs := frame.Segments()
	for _, r := range infill.Rods {
		segs = append(segs, r.Segment())
	}
	return geometry.Polygonize(geometry.NodeSegments(segs)), nil
}

// IncircleRadius approximates the radius of the largest circle inscribed in
// the ring as 2·area/perimeter. Exact for circles, a serviceable lower-bound
// proxy for convex-ish faces.
func IncircleRadius(ring geometry.Ring) float64 {
	p := ring.Perimeter()
	if p == 0 {
		return 0
	}
	return 2 * ring.Area() / p
}
