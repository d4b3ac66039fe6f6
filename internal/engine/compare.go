package engine

import (
	"fmt"

	"github.com/piwi3910/railgen/internal/model"
)

// ComparisonScenario defines a named set of generation parameters to compare.
type ComparisonScenario struct {
	Name   string
	Params model.GenerationParams
}

// ComparisonResult holds the generation outcome and computed statistics
// for a single scenario. Err is set when the scenario could not run or
// produced no arrangement; the remaining fields are then zero.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Infill     model.Infill
	Statistics model.GenerationStatistics
	RodsPlaced int
	Fitness    float64
	Complete   bool
	Err        error
}

// CompareScenarios runs one generation per scenario against the same frame
// and returns the results in scenario order. This enables side-by-side
// comparison of different parameters (evaluators, layer counts, anchor
// spacings). Each scenario runs on its own offset of the base seed, so the
// whole comparison is reproducible.
func CompareScenarios(frame *model.Frame, scenarios []ComparisonScenario, seed int64) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for i, scenario := range scenarios {
		res := ComparisonResult{Scenario: scenario}

		gen, err := New(scenario.Params, seed+int64(i))
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		infill, err := gen.Run(frame, nil, nil)
		res.Statistics = gen.Statistics()
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Infill = infill
		res.RodsPlaced = len(infill.Rods)
		res.Fitness = infill.Fitness()
		res.Complete = infill.IsComplete
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current parameters, varying key knobs to show what-if alternatives.
func BuildDefaultScenarios(base model.GenerationParams) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Params: base,
		},
	}

	// Scenario: Try the other evaluator
	altEval := base
	if base.Evaluator.Type == model.EvaluatorQuality {
		altEval.Evaluator.Type = model.EvaluatorPassThrough
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Pass-Through Evaluator",
			Params: altEval,
		})
	} else {
		altEval.Evaluator.Type = model.EvaluatorQuality
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Quality Evaluator",
			Params: altEval,
		})
	}

	// Scenario: Single layer vs. three layers
	altLayers := base
	if base.NumLayers > 1 {
		altLayers.NumLayers = 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Single Layer",
			Params: altLayers,
		})
	} else {
		altLayers.NumLayers = 3
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Three Layers",
			Params: altLayers,
		})
	}

	// Scenario: Denser anchors (simulate finer spacing)
	if base.MinAnchorDistanceOtherCm > 1.0 {
		dense := base
		dense.MinAnchorDistanceVerticalCm = base.MinAnchorDistanceVerticalCm * 0.5
		dense.MinAnchorDistanceOtherCm = base.MinAnchorDistanceOtherCm * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Anchor Spacing %.1fcm (half)", dense.MinAnchorDistanceOtherCm),
			Params: dense,
		})
	}

	// Scenario: No random angle deviation
	if base.RandomAngleDeviationDeg > 0 {
		straight := base
		straight.RandomAngleDeviationDeg = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Random Deviation",
			Params: straight,
		})
	}

	return scenarios
}
