package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Rectangular(t *testing.T) {
	params, err := DefaultParams(TypeRectangular)
	require.NoError(t, err)

	frame, err := Build(params)

	require.NoError(t, err)
	require.Len(t, frame.Rods, 4)
	for _, rod := range frame.Rods {
		assert.Equal(t, 0, rod.Layer)
		assert.InDelta(t, 0.5, rod.WeightPerMeter, 1e-9)
	}
	boundary, err := frame.Boundary()
	require.NoError(t, err)
	assert.InDelta(t, 200*100, boundary.Area(), 1e-6)
	assert.InDelta(t, 2*(200+100), boundary.Perimeter(), 1e-6)
}

func TestBuild_Parallelogram(t *testing.T) {
	params, err := DefaultParams(TypeParallelogram)
	require.NoError(t, err)

	frame, err := Build(params)

	require.NoError(t, err)
	require.Len(t, frame.Rods, 4)
	boundary, err := frame.Boundary()
	require.NoError(t, err)
	// Vertical posts of 100cm over a 300cm horizontal span.
	assert.InDelta(t, 100*300, boundary.Area(), 1e-6)
}

func TestBuild_Staircase(t *testing.T) {
	params, err := DefaultParams(TypeStaircase)
	require.NoError(t, err)

	frame, err := Build(params)

	require.NoError(t, err)
	// Two posts, the handrail, the first riser, then a tread per step and a
	// riser between steps.
	assert.Len(t, frame.Rods, 3+2*params.NumSteps)
	boundary, err := frame.Boundary()
	require.NoError(t, err)
	// post*width + width*height/(2*steps): the sloped band plus what the
	// saw-tooth bottom leaves over.
	assert.InDelta(t, 45920, boundary.Area(), 1e-6)
}

func TestBuild_SingleStepStaircase(t *testing.T) {
	params, err := DefaultParams(TypeStaircase)
	require.NoError(t, err)
	params.NumSteps = 1

	frame, err := Build(params)

	require.NoError(t, err)
	assert.Len(t, frame.Rods, 5)
	boundary, err := frame.Boundary()
	require.NoError(t, err)
	assert.InDelta(t, 150*280+280*280/2, boundary.Area(), 1e-6)
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build(Params{Type: "hexagonal", FrameWeightPerMeter: 0.5})
	assert.ErrorIs(t, err, ErrUnknownShapeType)

	_, err = DefaultParams("hexagonal")
	assert.ErrorIs(t, err, ErrUnknownShapeType)
}

func TestParamsValidate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		shapeType string
		mutate    func(*Params)
	}{
		{"zero width", TypeRectangular, func(p *Params) { p.WidthCm = 0 }},
		{"negative height", TypeRectangular, func(p *Params) { p.HeightCm = -10 }},
		{"zero post", TypeParallelogram, func(p *Params) { p.PostLengthCm = 0 }},
		{"zero slope width", TypeParallelogram, func(p *Params) { p.SlopeWidthCm = 0 }},
		{"zero steps", TypeStaircase, func(p *Params) { p.NumSteps = 0 }},
		{"too many steps", TypeStaircase, func(p *Params) { p.NumSteps = 51 }},
		{"zero frame weight", TypeRectangular, func(p *Params) { p.FrameWeightPerMeter = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := DefaultParams(tt.shapeType)
			require.NoError(t, err)
			tt.mutate(&params)

			err = params.Validate()

			assert.ErrorIs(t, err, ErrInvalidShapeParams)
		})
	}
}

func TestAvailable_EveryShapeClosesItsBoundary(t *testing.T) {
	types := Available()
	assert.Equal(t, []string{TypeRectangular, TypeParallelogram, TypeStaircase}, types)

	for _, typ := range types {
		params, err := DefaultParams(typ)
		require.NoError(t, err)
		frame, err := Build(params)
		require.NoError(t, err)
		_, err = frame.Boundary()
		assert.NoError(t, err, "shape %s must close into one polygon", typ)
	}
}
