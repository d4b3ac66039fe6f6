package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// squareFrame builds a closed size x size frame with its origin corner at
// (0, 0).
func squareFrame(t *testing.T, size float64) *model.Frame {
	t.Helper()
	corners := []geometry.Point2D{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	}
	rods := make([]model.Rod, 4)
	for i := range corners {
		rods[i] = model.NewBoundaryRod(corners[i], corners[(i+1)%4], 0.3)
	}
	f, err := model.NewFrame(rods)
	require.NoError(t, err)
	return f
}

// verticalRod spans the full height of a 100-unit frame at the given x.
func verticalRod(x float64, layer int) model.Rod {
	return model.NewRod(
		geometry.Point2D{X: x, Y: 0}, geometry.Point2D{X: x, Y: 100},
		layer, 0.3, 0, 0,
	)
}

func TestNew_DispatchesOnType(t *testing.T) {
	ev, err := New(model.EvaluatorParams{Type: model.EvaluatorPassThrough})
	require.NoError(t, err)
	assert.IsType(t, PassThrough{}, ev)

	ev, err = New(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 100, MinHoleAreaCm2: 1})
	require.NoError(t, err)
	assert.IsType(t, Quality{}, ev)

	_, err = New(model.EvaluatorParams{Type: "nonsense"})
	assert.Error(t, err)
}

func TestPassThrough_AlwaysPerfect(t *testing.T) {
	frame := squareFrame(t, 100)
	infill := &model.Infill{IsComplete: false}

	score, err := PassThrough{}.Evaluate(infill, frame)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	result, err := PassThrough{}.CheckAcceptance(infill, frame)
	require.NoError(t, err)
	assert.True(t, result.IsAcceptable)
	assert.Zero(t, result.Reasons.Total())
}

func TestIdentifyHoles_EmptyInfillIsOneHole(t *testing.T) {
	frame := squareFrame(t, 100)

	holes, err := IdentifyHoles(&model.Infill{}, frame)
	require.NoError(t, err)
	require.Len(t, holes, 1)
	assert.InDelta(t, 10000.0, holes[0].Area(), 1e-6, "the single hole is the frame interior")
}

func TestIdentifyHoles_ThreeVerticalsMakeFourHoles(t *testing.T) {
	frame := squareFrame(t, 100)
	infill := &model.Infill{
		Rods: []model.Rod{verticalRod(25, 1), verticalRod(50, 1), verticalRod(75, 1)},
	}

	holes, err := IdentifyHoles(infill, frame)
	require.NoError(t, err)
	require.Len(t, holes, 4)
	for _, h := range holes {
		assert.InDelta(t, 2500.0, h.Area(), 1.0)
	}
}

func TestIdentifyHoles_CrossLayerCrossingsSplitFaces(t *testing.T) {
	// A vertical on layer 1 and a horizontal on layer 2 cross, giving four
	// quadrants.
	frame := squareFrame(t, 100)
	horizontal := model.NewRod(
		geometry.Point2D{X: 0, Y: 50}, geometry.Point2D{X: 100, Y: 50},
		2, 0.3, 0, 0,
	)
	infill := &model.Infill{Rods: []model.Rod{verticalRod(50, 1), horizontal}}

	holes, err := IdentifyHoles(infill, frame)
	require.NoError(t, err)
	assert.Len(t, holes, 4)
}

func TestIncircleRadius_Square(t *testing.T) {
	square := geometry.Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	// 2*100/40 = 5: exact for a square.
	assert.InDelta(t, 5.0, IncircleRadius(square), 1e-9)
}

func TestQualityEvaluate_UniformHolesScorePerfect(t *testing.T) {
	frame := squareFrame(t, 100)
	infill := &model.Infill{
		Rods: []model.Rod{verticalRod(25, 1), verticalRod(50, 1), verticalRod(75, 1)},
	}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 10000, MinHoleAreaCm2: 10})
	score, err := q.Evaluate(infill, frame)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9, "equal cells have identical incircle radii")
}

func TestQualityEvaluate_SingleHoleScoresPerfect(t *testing.T) {
	frame := squareFrame(t, 100)

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 99999, MinHoleAreaCm2: 1})
	score, err := q.Evaluate(&model.Infill{}, frame)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestQualityEvaluate_UnevenHolesScoreLower(t *testing.T) {
	// One rod far off-center leaves a thin and a wide cell.
	frame := squareFrame(t, 100)
	infill := &model.Infill{Rods: []model.Rod{verticalRod(10, 1)}}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 99999, MinHoleAreaCm2: 1})
	score, err := q.Evaluate(infill, frame)
	require.NoError(t, err)
	assert.Less(t, score, 0.9)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestQualityAcceptance_OversizedHolesCountedPerHole(t *testing.T) {
	// One center rod splits the frame into two 5000 cm² holes, both over
	// the 1000 cm² limit.
	frame := squareFrame(t, 100)
	infill := &model.Infill{Rods: []model.Rod{verticalRod(50, 1)}, IsComplete: true}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 1000, MinHoleAreaCm2: 10})
	result, err := q.CheckAcceptance(infill, frame)
	require.NoError(t, err)

	assert.False(t, result.IsAcceptable)
	assert.Equal(t, 2, result.Reasons.HoleTooLarge)
	assert.Zero(t, result.Reasons.HoleTooSmall)
	assert.Zero(t, result.Reasons.Incomplete)
}

func TestQualityAcceptance_IncompleteCountsOnce(t *testing.T) {
	frame := squareFrame(t, 100)
	infill := &model.Infill{IsComplete: false}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 99999, MinHoleAreaCm2: 1})
	result, err := q.CheckAcceptance(infill, frame)
	require.NoError(t, err)

	assert.False(t, result.IsAcceptable)
	assert.Equal(t, 1, result.Reasons.Incomplete)
}

func TestQualityAcceptance_CleanPasses(t *testing.T) {
	frame := squareFrame(t, 100)
	infill := &model.Infill{
		Rods:       []model.Rod{verticalRod(25, 1), verticalRod(50, 1), verticalRod(75, 1)},
		IsComplete: true,
	}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 5000, MinHoleAreaCm2: 10})
	result, err := q.CheckAcceptance(infill, frame)
	require.NoError(t, err)

	assert.True(t, result.IsAcceptable)
	assert.Zero(t, result.Reasons.Total())
}

func TestQualityAcceptance_UndersizedHoles(t *testing.T) {
	// Verticals 1 cm apart make a sliver cell of 100 cm².
	frame := squareFrame(t, 100)
	infill := &model.Infill{
		Rods:       []model.Rod{verticalRod(49, 1), verticalRod(50, 2)},
		IsComplete: true,
	}

	q := NewQuality(model.EvaluatorParams{Type: model.EvaluatorQuality, MaxHoleAreaCm2: 99999, MinHoleAreaCm2: 500})
	result, err := q.CheckAcceptance(infill, frame)
	require.NoError(t, err)

	assert.False(t, result.IsAcceptable)
	assert.Equal(t, 1, result.Reasons.HoleTooSmall)
}
