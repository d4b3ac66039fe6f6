package shapes

import (
	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// buildRectangular lays four rods counterclockwise from the bottom-left
// corner at the origin.
func buildRectangular(p Params) (*model.Frame, error) {
	pts := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: p.WidthCm, Y: 0},
		{X: p.WidthCm, Y: p.HeightCm},
		{X: 0, Y: p.HeightCm},
	}
	return model.NewFrame(closedLoop(pts, p.FrameWeightPerMeter))
}

// buildParallelogram raises two equal posts connected by a sloped handrail
// on top and a parallel sloped rail at the bottom.
func buildParallelogram(p Params) (*model.Frame, error) {
	pts := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 0, Y: p.PostLengthCm},
		{X: p.SlopeWidthCm, Y: p.SlopeHeightCm + p.PostLengthCm},
		{X: p.SlopeWidthCm, Y: p.SlopeHeightCm},
	}
	return model.NewFrame(closedLoop(pts, p.FrameWeightPerMeter))
}

// buildStaircase connects two posts with a sloped handrail and follows the
// steps along the bottom, tread by riser, from the right post back to the
// origin.
func buildStaircase(p Params) (*model.Frame, error) {
	stepWidth := p.StairWidthCm / float64(p.NumSteps)
	stepHeight := p.StairHeightCm / float64(p.NumSteps)

	pts := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 0, Y: p.PostLengthCm},
		{X: p.StairWidthCm, Y: p.PostLengthCm + p.StairHeightCm},
		{X: p.StairWidthCm, Y: p.StairHeightCm},
	}
	for i := p.NumSteps - 1; i >= 0; i-- {
		xRight := float64(i+1) * stepWidth
		xLeft := float64(i) * stepWidth
		y := float64(i) * stepHeight
		// Riser down to the tread, then the tread going left. The final
		// tread ends at the origin and closes the loop against the left
		// post, so its riser is the closing edge itself.
		pts = append(pts, geometry.Point2D{X: xRight, Y: y})
		if i > 0 {
			pts = append(pts, geometry.Point2D{X: xLeft, Y: y})
		}
	}
	return model.NewFrame(closedLoop(pts, p.FrameWeightPerMeter))
}

// closedLoop turns an ordered corner list into boundary rods, connecting the
// last corner back to the first.
func closedLoop(pts []geometry.Point2D, weightPerMeter float64) []model.Rod {
	rods := make([]model.Rod, len(pts))
	for i := range pts {
		rods[i] = model.NewBoundaryRod(pts[i], pts[(i+1)%len(pts)], weightPerMeter)
	}
	return rods
}
