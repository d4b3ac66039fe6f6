package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// maxConsecutiveFailures is the number of placement attempts in a row that
// may fail before the layer is abandoned.
const maxConsecutiveFailures = 100

// constraintValidator applies the placement constraints to candidate rod
// segments, recording every rejection in the run statistics.
type constraintValidator struct {
	params   model.GenerationParams
	stats    *model.GenerationStatistics
	boundary geometry.Ring
}

// validate reports whether the candidate segment may become a rod on the
// given layer. A rejection increments exactly one statistics counter and
// never raises.
func (v *constraintValidator) validate(seg geometry.Segment, layerRods []model.Rod) bool {
	length := seg.Length()
	if length < v.params.MinRodLengthCm {
		v.stats.TooShort++
		return false
	}
	if length > v.params.MaxRodLengthCm {
		v.stats.TooLong++
		return false
	}
	if !v.boundary.CoversSegment(seg, model.BoundaryToleranceCm) {
		v.stats.OutsideBoundary++
		return false
	}
	if seg.AngleFromVerticalDeg() > v.params.MaxAngleDeviationDeg {
		v.stats.AngleTooLarge++
		return false
	}
	for _, rod := range layerRods {
		if geometry.SegmentsCross(seg, rod.Segment()) {
			v.stats.CrossesSameLayer++
			return false
		}
	}
	return true
}

// rodPlacer fills a single layer with rods by projecting candidate lines
// from random unused anchors toward the far side of the frame.
type rodPlacer struct {
	params    model.GenerationParams
	rng       *rand.Rand
	stats     *model.GenerationStatistics
	boundary  geometry.Ring
	diagonal  float64
	validator constraintValidator
}

func newRodPlacer(params model.GenerationParams, rng *rand.Rand, stats *model.GenerationStatistics, boundary geometry.Ring) *rodPlacer {
	return &rodPlacer{
		params:    params,
		rng:       rng,
		stats:     stats,
		boundary:  boundary,
		diagonal:  boundary.Diagonal(),
		validator: constraintValidator{params: params, stats: stats, boundary: boundary},
	}
}

// layerTarget returns how many rods the given layer should receive. The
// first NumRods mod NumLayers layers take one extra rod.
func (p *rodPlacer) layerTarget(layer int) int {
	target := p.params.NumRods / p.params.NumLayers
	if layer <= p.params.NumRods%p.params.NumLayers {
		target++
	}
	return target
}

// placeLayer generates rods for one layer until its target count is reached
// or a budget runs out. usedIterations carries the iterations spent by the
// previous layers of the same arrangement; the return values are the placed
// rods and the iterations this layer consumed.
func (p *rodPlacer) placeLayer(layer int, arena []model.AnchorPoint, anchorIdxs []int, mainDirectionDeg float64, start time.Time, usedIterations int, cancel *CancelFlag) ([]model.Rod, int) {
	target := p.layerTarget(layer)

	var rods []model.Rod
	unused := append([]int(nil), anchorIdxs...)
	iterations := 0
	failures := 0

	for len(rods) < target {
		iterations++
		if cancel.Cancelled() {
			break
		}
		if usedIterations+iterations >= p.params.MaxIterations {
			break
		}
		if time.Since(start).Seconds() > p.params.MaxDurationSec {
			break
		}
		if len(unused) < 2 {
			p.stats.NoAnchorsLeft++
			break
		}
		if failures >= maxConsecutiveFailures {
			break
		}

		startIdx := unused[p.rng.Intn(len(unused))]
		startAnchor := arena[startIdx]

		deviation := (p.rng.Float64()*2 - 1) * p.params.RandomAngleDeviationDeg
		endIdx, ok := p.findEndAnchor(arena, unused, startIdx, mainDirectionDeg+deviation)
		if !ok {
			failures++
			continue
		}
		endAnchor := arena[endIdx]

		seg := geometry.Segment{A: startAnchor.Position, B: endAnchor.Position}
		if !p.validator.validate(seg, rods) {
			failures++
			continue
		}

		rodAngle := seg.SignedAngleFromVerticalDeg()
		rods = append(rods, model.NewRod(
			startAnchor.Position, endAnchor.Position, layer, p.params.WeightPerMeter,
			startAnchor.CutAngleDeg(rodAngle), endAnchor.CutAngleDeg(rodAngle),
		))

		arena[startIdx].Used = true
		arena[endIdx].Used = true
		kept := unused[:0]
		for _, idx := range unused {
			if !arena[idx].Used {
				kept = append(kept, idx)
			}
		}
		unused = kept
		failures = 0
	}

	return rods, iterations
}

// findEndAnchor projects a line through the start anchor at the target angle
// (degrees from vertical, positive leaning right), long enough to exit the
// frame in both directions, and returns the unused anchor nearest to where
// the line leaves the boundary on the far side.
func (p *rodPlacer) findEndAnchor(arena []model.AnchorPoint, unused []int, startIdx int, targetAngleDeg float64) (int, bool) {
	start := arena[startIdx].Position
	rad := targetAngleDeg * math.Pi / 180
	reach := 2 * p.diagonal
	dx := reach * math.Sin(rad)
	dy := reach * math.Cos(rad)
	line := geometry.Segment{
		A: geometry.Point2D{X: start.X - dx, Y: start.Y - dy},
		B: geometry.Point2D{X: start.X + dx, Y: start.Y + dy},
	}

	var exit geometry.Point2D
	farthest := 0.0
	for _, hit := range p.boundary.IntersectionsWithSegment(line) {
		if d := start.Distance(hit); d > farthest {
			farthest = d
			exit = hit
		}
	}
	if farthest == 0 {
		return 0, false
	}

	best := -1
	bestDist := math.Inf(1)
	for _, idx := range unused {
		if idx == startIdx {
			continue
		}
		if d := arena[idx].Position.Distance(exit); d < bestDist {
			bestDist = d
			best = idx
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
