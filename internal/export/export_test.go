package export

import (
	"testing"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// buildTestFrame returns a 200x100 cm rectangular frame.
func buildTestFrame(t *testing.T) *model.Frame {
	t.Helper()
	corners := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
	}
	rods := make([]model.Rod, len(corners))
	for i, c := range corners {
		rods[i] = model.NewBoundaryRod(c, corners[(i+1)%len(corners)], 0.5)
	}
	frame, err := model.NewFrame(rods)
	if err != nil {
		t.Fatalf("failed to build frame: %v", err)
	}
	return frame
}

// buildTestInfill returns a two-layer infill with four non-crossing rods
// and a fitness score.
func buildTestInfill() model.Infill {
	rods := []model.Rod{
		model.NewRod(geometry.Point2D{X: 40, Y: 0}, geometry.Point2D{X: 50, Y: 100}, 1, 0.3, -5.7, -5.7),
		model.NewRod(geometry.Point2D{X: 90, Y: 0}, geometry.Point2D{X: 90, Y: 100}, 1, 0.3, -90, -90),
		model.NewRod(geometry.Point2D{X: 140, Y: 0}, geometry.Point2D{X: 120, Y: 100}, 2, 0.3, 11.3, 11.3),
		model.NewRod(geometry.Point2D{X: 170, Y: 0}, geometry.Point2D{X: 175, Y: 100}, 2, 0.3, -2.9, -2.9),
	}
	infill := model.Infill{
		Rods:           rods,
		IterationCount: 42,
		DurationSec:    1.5,
		IsComplete:     true,
	}
	infill.SetFitness(0.82)
	return infill
}
