package evaluator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/piwi3910/railgen/internal/model"
)

// Quality judges an infill by the holes it encloses: their sizes must stay
// within the configured bounds for acceptance, and the fitness score rewards
// holes of uniform inscribed-circle radius.
//
// Of the configured weights only the hole uniformity term is currently
// scored; the angle distribution and anchor spacing criteria are reserved
// for combineScores.
type Quality struct {
	params model.EvaluatorParams
}

// NewQuality builds a quality evaluator from its parameters.
func NewQuality(params model.EvaluatorParams) Quality {
	return Quality{params: params}
}

// Evaluate scores hole uniformity: 1 minus the coefficient of variation of
// the hole incircle radii, clamped to [0, 1]. Arrangements with at most one
// hole, or with identical radii, score a full 1.0.
func (q Quality) Evaluate(infill *model.Infill, frame *model.Frame) (float64, error) {
	holes, err := IdentifyHoles(infill, frame)
	if err != nil {
		return 0, err
	}
	if len(holes) <= 1 {
		return 1.0, nil
	}

	radii := make([]float64, len(holes))
	for i, h := range holes {
		radii[i] = IncircleRadius(h)
	}
	mean, std := stat.MeanStdDev(radii, nil)
	if mean <= 0 {
		return 0, nil
	}
	return combineScores(1 - std/mean), nil
}

// combineScores folds the individual criterion scores into the final
// fitness. Today only the hole uniformity score exists; the remaining
// weighted criteria plug in here once they are implemented.
func combineScores(holeUniformity float64) float64 {
	return clampScore(holeUniformity)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// CheckAcceptance rejects the infill once for being incomplete and once per
// hole whose area falls outside the configured bounds. An infill is
// acceptable only with zero rejections.
func (q Quality) CheckAcceptance(infill *model.Infill, frame *model.Frame) (EvaluationResult, error) {
	holes, err := IdentifyHoles(infill, frame)
	if err != nil {
		return EvaluationResult{}, err
	}

	var reasons RejectionReasons
	if !infill.IsComplete {
		reasons.Incomplete++
	}
	for _, h := range holes {
		area := h.Area()
		switch {
		case area > q.params.MaxHoleAreaCm2:
			reasons.HoleTooLarge++
		case area < q.params.MinHoleAreaCm2:
			reasons.HoleTooSmall++
		}
	}

	if reasons.Total() > 0 {
		return Rejected(reasons), nil
	}
	return Accepted(), nil
}
