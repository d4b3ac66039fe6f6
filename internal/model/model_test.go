package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/railgen/internal/geometry"
)

func squareFrame(t *testing.T, size float64) *Frame {
	t.Helper()
	corners := []geometry.Point2D{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	}
	rods := make([]Rod, 4)
	for i := range corners {
		rods[i] = NewBoundaryRod(corners[i], corners[(i+1)%4], 0.3)
	}
	f, err := NewFrame(rods)
	require.NoError(t, err)
	return f
}

func TestNewRod_AssignsShortID(t *testing.T) {
	r := NewRod(geometry.Point2D{}, geometry.Point2D{X: 10}, 1, 0.3, 0, 0)
	assert.Len(t, r.ID, 8)

	other := NewRod(geometry.Point2D{}, geometry.Point2D{X: 10}, 1, 0.3, 0, 0)
	assert.NotEqual(t, r.ID, other.ID, "IDs should be unique")
}

func TestRod_Measures(t *testing.T) {
	r := NewRod(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 0, Y: 150}, 1, 0.3, 0, 0)

	assert.InDelta(t, 150.0, r.Length(), 1e-9)
	assert.InDelta(t, 0.45, r.WeightKg(), 1e-9, "1.5m at 0.3 kg/m")
	assert.InDelta(t, 0.0, r.AngleFromVerticalDeg(), 1e-9)

	diag := NewRod(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: -100, Y: 100}, 1, 0.3, 0, 0)
	assert.InDelta(t, 45.0, diag.AngleFromVerticalDeg(), 1e-9)
	assert.InDelta(t, -45.0, diag.SignedAngleFromVerticalDeg(), 1e-9)
}

func TestFrame_BoundaryOfSquare(t *testing.T) {
	f := squareFrame(t, 100)

	ring, err := f.Boundary()
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, ring.Area(), 1e-6)
	assert.InDelta(t, 10000.0, f.Area(), 1e-6)
	assert.InDelta(t, 141.4213562, f.Diagonal(), 1e-6)
}

func TestNewFrame_RejectsOpenBoundary(t *testing.T) {
	rods := []Rod{
		NewBoundaryRod(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 0}, 0.3),
		NewBoundaryRod(geometry.Point2D{X: 100, Y: 0}, geometry.Point2D{X: 100, Y: 100}, 0.3),
		NewBoundaryRod(geometry.Point2D{X: 100, Y: 100}, geometry.Point2D{X: 0, Y: 100}, 0.3),
	}

	_, err := NewFrame(rods)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFrame))
}

func TestNewFrame_RejectsTwoSeparateLoops(t *testing.T) {
	mk := func(ox float64) []Rod {
		corners := []geometry.Point2D{
			{X: ox, Y: 0}, {X: ox + 10, Y: 0}, {X: ox + 10, Y: 10}, {X: ox, Y: 10},
		}
		rods := make([]Rod, 4)
		for i := range corners {
			rods[i] = NewBoundaryRod(corners[i], corners[(i+1)%4], 0.3)
		}
		return rods
	}

	_, err := NewFrame(append(mk(0), mk(100)...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFrame))
}

func TestInfill_Totals(t *testing.T) {
	in := Infill{
		Rods: []Rod{
			NewRod(geometry.Point2D{}, geometry.Point2D{Y: 100}, 1, 0.3, 0, 0),
			NewRod(geometry.Point2D{}, geometry.Point2D{Y: 50}, 2, 0.3, 0, 0),
		},
	}

	assert.InDelta(t, 150.0, in.TotalLengthCm(), 1e-9)
	assert.InDelta(t, 0.45, in.TotalWeightKg(), 1e-9)
	assert.Len(t, in.LayerRods(1), 1)
	assert.Len(t, in.LayerRods(2), 1)
	assert.Empty(t, in.LayerRods(3))
}

func TestInfill_FitnessOptional(t *testing.T) {
	in := Infill{}
	assert.Equal(t, 0.0, in.Fitness(), "unscored infill reports 0")

	in.SetFitness(0.85)
	require.NotNil(t, in.FitnessScore)
	assert.InDelta(t, 0.85, in.Fitness(), 1e-9)
}

func TestInfill_JSONRoundTrip(t *testing.T) {
	in := Infill{
		Rods: []Rod{
			NewRod(geometry.Point2D{X: 12.345678, Y: 0.000001}, geometry.Point2D{X: 87.5, Y: 99.25}, 1, 0.3, 12.5, -45),
		},
		AnchorPoints: []AnchorPoint{
			{
				Position:             geometry.Point2D{X: 12.345678, Y: 0.000001},
				FrameSegmentIndex:    2,
				IsVerticalSegment:    true,
				FrameSegmentAngleDeg: -3.25,
				Layer:                1,
				Used:                 true,
			},
		},
		IterationCount: 42,
		DurationSec:    1.5,
		IsComplete:     true,
	}
	in.SetFitness(0.75)

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var got Infill
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got.Rods, 1)
	assert.InDelta(t, in.Rods[0].Start.X, got.Rods[0].Start.X, 1e-6)
	assert.InDelta(t, in.Rods[0].End.Y, got.Rods[0].End.Y, 1e-6)
	assert.InDelta(t, in.Rods[0].StartCutAngleDeg, got.Rods[0].StartCutAngleDeg, 1e-6)
	assert.Equal(t, in.Rods[0].ID, got.Rods[0].ID)
	assert.Equal(t, in.Rods[0].Layer, got.Rods[0].Layer)

	require.Len(t, got.AnchorPoints, 1)
	assert.Equal(t, in.AnchorPoints[0], got.AnchorPoints[0])

	require.NotNil(t, got.FitnessScore)
	assert.InDelta(t, 0.75, got.Fitness(), 1e-9)
	assert.Equal(t, 42, got.IterationCount)
	assert.True(t, got.IsComplete)
}
