package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// Anchor generation tuning constants.
const (
	// anchorEndMarginCm keeps anchors away from the corners of each
	// boundary segment.
	anchorEndMarginCm = 2.0
	// anchorJitterFraction is the maximum random offset applied to an
	// evenly spaced anchor, as a fraction of the segment's spacing.
	anchorJitterFraction = 0.2
	// verticalSlopeRatio classifies a boundary segment as vertical when
	// |dx|/|dy| stays below it.
	verticalSlopeRatio = 0.1
)

// anchorGenerator produces the candidate anchor points along the frame
// boundary. The result is a flat arena in boundary-segment order; the
// placement code addresses anchors by their index into it.
type anchorGenerator struct {
	params model.GenerationParams
	rng    *rand.Rand
}

// generate builds anchors for every boundary segment and then runs the
// cross-segment cleanup pass.
func (g *anchorGenerator) generate(frame *model.Frame) []model.AnchorPoint {
	perSegment := make([][]model.AnchorPoint, len(frame.Rods))
	for i, rod := range frame.Rods {
		perSegment[i] = g.segmentAnchors(i, rod.Segment())
	}
	g.cleanupBoundaries(perSegment)

	var arena []model.AnchorPoint
	for _, anchors := range perSegment {
		arena = append(arena, anchors...)
	}
	return arena
}

// isVerticalSegment reports whether a boundary segment counts as vertical
// for anchor spacing purposes.
func isVerticalSegment(seg geometry.Segment) bool {
	dx := math.Abs(seg.B.X - seg.A.X)
	dy := math.Abs(seg.B.Y - seg.A.Y)
	return dy > 0 && dx/dy < verticalSlopeRatio
}

// segmentAnchors places anchors along one boundary segment. Segments too
// short for the end margins get none; segments whose usable span is shorter
// than the spacing get a single anchor at the middle of the span; everything
// else gets evenly spaced anchors with random jitter, clamped inside the
// margins.
func (g *anchorGenerator) segmentAnchors(index int, seg geometry.Segment) []model.AnchorPoint {
	length := seg.Length()
	usable := length - 2*anchorEndMarginCm
	if usable < 0 {
		return nil
	}

	vertical := isVerticalSegment(seg)
	spacing := g.params.MinAnchorDistanceOtherCm
	if vertical {
		spacing = g.params.MinAnchorDistanceVerticalCm
	}

	var positions []float64 // distance from seg.A, cm
	if usable < spacing {
		positions = []float64{anchorEndMarginCm + usable/2}
	} else {
		count := int(length / spacing)
		if count < 2 {
			count = 2
		}
		step := usable / float64(count-1)
		maxJitter := anchorJitterFraction * spacing
		for i := 0; i < count; i++ {
			pos := anchorEndMarginCm + float64(i)*step
			pos += (g.rng.Float64()*2 - 1) * maxJitter
			if pos < anchorEndMarginCm {
				pos = anchorEndMarginCm
			}
			if pos > length-anchorEndMarginCm {
				pos = length - anchorEndMarginCm
			}
			positions = append(positions, pos)
		}
	}

	angle := seg.SignedAngleFromVerticalDeg()
	anchors := make([]model.AnchorPoint, len(positions))
	for i, pos := range positions {
		anchors[i] = model.AnchorPoint{
			Position:             seg.PointAt(pos / length),
			FrameSegmentIndex:    index,
			IsVerticalSegment:    vertical,
			FrameSegmentAngleDeg: angle,
		}
	}
	return anchors
}

// cleanupBoundaries drops anchors that crowd a segment boundary: when the
// last anchor of one segment and the first anchor of the next sit closer
// than the smaller of the two segments' spacings, the next segment loses its
// first anchor. The pass runs in boundary order only; it does not wrap from
// the last segment back to the first.
func (g *anchorGenerator) cleanupBoundaries(perSegment [][]model.AnchorPoint) {
	for i := 1; i < len(perSegment); i++ {
		prev := perSegment[i-1]
		cur := perSegment[i]
		if len(prev) == 0 || len(cur) == 0 {
			continue
		}
		last := prev[len(prev)-1]
		first := cur[0]
		threshold := math.Min(g.spacingFor(last), g.spacingFor(first))
		if last.Position.Distance(first.Position) < threshold {
			perSegment[i] = cur[1:]
		}
	}
}

func (g *anchorGenerator) spacingFor(a model.AnchorPoint) float64 {
	if a.IsVerticalSegment {
		return g.params.MinAnchorDistanceVerticalCm
	}
	return g.params.MinAnchorDistanceOtherCm
}
