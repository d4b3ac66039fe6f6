package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCutAngleDeg_VerticalRodOnVerticalSegment(t *testing.T) {
	a := AnchorPoint{FrameSegmentAngleDeg: 0}
	assert.InDelta(t, 0.0, a.CutAngleDeg(0), 1e-9)
}

func TestCutAngleDeg_TiltedRodOnVerticalSegment(t *testing.T) {
	a := AnchorPoint{FrameSegmentAngleDeg: 0}
	assert.InDelta(t, 15.0, a.CutAngleDeg(15), 1e-9)
}

func TestCutAngleDeg_VerticalRodOnTiltedSegments(t *testing.T) {
	// The cut angle mirrors the segment tilt.
	right := AnchorPoint{FrameSegmentAngleDeg: 10}
	assert.InDelta(t, -10.0, right.CutAngleDeg(0), 1e-9)

	left := AnchorPoint{FrameSegmentAngleDeg: -10}
	assert.InDelta(t, 10.0, left.CutAngleDeg(0), 1e-9)
}

func TestCutAngleDeg_BothTilted(t *testing.T) {
	a := AnchorPoint{FrameSegmentAngleDeg: 20}
	assert.InDelta(t, 5.0, a.CutAngleDeg(25), 1e-9)

	b := AnchorPoint{FrameSegmentAngleDeg: -15}
	assert.InDelta(t, 40.0, b.CutAngleDeg(25), 1e-9)
}

func TestCutAngleDeg_FoldsThroughPlus180(t *testing.T) {
	// 50 - (-80) = 130, outside [-90, 90], folds to 50.
	a := AnchorPoint{FrameSegmentAngleDeg: -80}
	assert.InDelta(t, 50.0, a.CutAngleDeg(50), 1e-9)
}

func TestCutAngleDeg_FoldsThroughMinus180(t *testing.T) {
	// -50 - 80 = -130 folds to -50.
	a := AnchorPoint{FrameSegmentAngleDeg: 80}
	assert.InDelta(t, -50.0, a.CutAngleDeg(-50), 1e-9)
}

func TestCutAngleDeg_HorizontalSegmentBoundary(t *testing.T) {
	// 0 - 90 = -90 sits exactly on the range edge and is not folded.
	a := AnchorPoint{FrameSegmentAngleDeg: 90}
	assert.InDelta(t, -90.0, a.CutAngleDeg(0), 1e-9)
}

func TestNormalizeCutAngleDeg_InRangeUntouched(t *testing.T) {
	for _, deg := range []float64{-90, -45, 0, 45, 90} {
		assert.InDelta(t, deg, NormalizeCutAngleDeg(deg), 1e-9)
	}
}
