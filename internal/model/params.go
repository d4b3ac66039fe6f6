package model

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by GenerationParams.Validate when one or more
// parameters are out of range. Individual violations are joined into it.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Evaluator type discriminators.
const (
	EvaluatorPassThrough = "passthrough"
	EvaluatorQuality     = "quality"
)

// EvaluatorParams selects and configures the fitness evaluator. Type decides
// the variant; the remaining fields only apply to the quality evaluator.
type EvaluatorParams struct {
	Type string `json:"type" toml:"type"`

	MaxHoleAreaCm2 float64 `json:"max_hole_area_cm2" toml:"max_hole_area_cm2"`
	MinHoleAreaCm2 float64 `json:"min_hole_area_cm2" toml:"min_hole_area_cm2"`

	// Weighted criteria. Only the hole uniformity term currently
	// contributes to the score; the others are reserved.
	HoleUniformityWeight    float64 `json:"hole_uniformity_weight" toml:"hole_uniformity_weight"`
	IncircleRadiusWeight    float64 `json:"incircle_radius_weight" toml:"incircle_radius_weight"`
	AngleDistributionWeight float64 `json:"angle_distribution_weight" toml:"angle_distribution_weight"`
	HorizontalSpacingWeight float64 `json:"horizontal_spacing_weight" toml:"horizontal_spacing_weight"`
	VerticalSpacingWeight   float64 `json:"vertical_spacing_weight" toml:"vertical_spacing_weight"`
}

// DefaultEvaluatorParams returns the pass-through evaluator with the stock
// quality settings filled in, so switching Type is enough to opt in.
func DefaultEvaluatorParams() EvaluatorParams {
	return EvaluatorParams{
		Type:                    EvaluatorPassThrough,
		MaxHoleAreaCm2:          10000,
		MinHoleAreaCm2:          10,
		HoleUniformityWeight:    0.3,
		IncircleRadiusWeight:    0.2,
		AngleDistributionWeight: 0.2,
		HorizontalSpacingWeight: 0.15,
		VerticalSpacingWeight:   0.15,
	}
}

// GenerationParams configures one infill generation run.
type GenerationParams struct {
	NumRods              int     `json:"num_rods" toml:"num_rods"`
	MinRodLengthCm       float64 `json:"min_rod_length_cm" toml:"min_rod_length_cm"`
	MaxRodLengthCm       float64 `json:"max_rod_length_cm" toml:"max_rod_length_cm"`
	MaxAngleDeviationDeg float64 `json:"max_angle_deviation_deg" toml:"max_angle_deviation_deg"`
	NumLayers            int     `json:"num_layers" toml:"num_layers"`

	MinAnchorDistanceVerticalCm float64 `json:"min_anchor_distance_vertical_cm" toml:"min_anchor_distance_vertical_cm"`
	MinAnchorDistanceOtherCm    float64 `json:"min_anchor_distance_other_cm" toml:"min_anchor_distance_other_cm"`

	MainDirectionRangeMinDeg float64 `json:"main_direction_range_min_deg" toml:"main_direction_range_min_deg"`
	MainDirectionRangeMaxDeg float64 `json:"main_direction_range_max_deg" toml:"main_direction_range_max_deg"`
	RandomAngleDeviationDeg  float64 `json:"random_angle_deviation_deg" toml:"random_angle_deviation_deg"`

	MaxIterations  int     `json:"max_iterations" toml:"max_iterations"`
	MaxDurationSec float64 `json:"max_duration_sec" toml:"max_duration_sec"`

	MaxEvaluationAttempts    int     `json:"max_evaluation_attempts" toml:"max_evaluation_attempts"`
	MaxEvaluationDurationSec float64 `json:"max_evaluation_duration_sec" toml:"max_evaluation_duration_sec"`
	MinAcceptableFitness     float64 `json:"min_acceptable_fitness" toml:"min_acceptable_fitness"`

	WeightPerMeter float64 `json:"weight_per_meter" toml:"weight_per_meter"`

	Evaluator EvaluatorParams `json:"evaluator" toml:"evaluator"`
}

// DefaultGenerationParams returns the production defaults.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		NumRods:                     30,
		MinRodLengthCm:              50,
		MaxRodLengthCm:              200,
		MaxAngleDeviationDeg:        40,
		NumLayers:                   3,
		MinAnchorDistanceVerticalCm: 15,
		MinAnchorDistanceOtherCm:    5,
		MainDirectionRangeMinDeg:    -30,
		MainDirectionRangeMaxDeg:    10,
		RandomAngleDeviationDeg:     20,
		MaxIterations:               1000,
		MaxDurationSec:              60,
		MaxEvaluationAttempts:       10,
		MaxEvaluationDurationSec:    60,
		MinAcceptableFitness:        0.7,
		WeightPerMeter:              0.3,
		Evaluator:                   DefaultEvaluatorParams(),
	}
}

// Validate checks every parameter range and returns all violations joined
// into ErrInvalidParams, or nil if the configuration is usable.
func (p GenerationParams) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.NumRods < 1 {
		fail("num_rods must be >= 1, got %d", p.NumRods)
	}
	if p.MinRodLengthCm <= 0 {
		fail("min_rod_length_cm must be > 0, got %g", p.MinRodLengthCm)
	}
	if p.MaxRodLengthCm <= 0 {
		fail("max_rod_length_cm must be > 0, got %g", p.MaxRodLengthCm)
	}
	if p.MinRodLengthCm > 0 && p.MaxRodLengthCm > 0 && p.MinRodLengthCm > p.MaxRodLengthCm {
		fail("min_rod_length_cm %g exceeds max_rod_length_cm %g", p.MinRodLengthCm, p.MaxRodLengthCm)
	}
	if p.MaxAngleDeviationDeg < 0 || p.MaxAngleDeviationDeg > 75 {
		fail("max_angle_deviation_deg must be in [0, 75], got %g", p.MaxAngleDeviationDeg)
	}
	if p.NumLayers < 1 || p.NumLayers > 5 {
		fail("num_layers must be in [1, 5], got %d", p.NumLayers)
	}
	if p.MinAnchorDistanceVerticalCm <= 0 {
		fail("min_anchor_distance_vertical_cm must be > 0, got %g", p.MinAnchorDistanceVerticalCm)
	}
	if p.MinAnchorDistanceOtherCm <= 0 {
		fail("min_anchor_distance_other_cm must be > 0, got %g", p.MinAnchorDistanceOtherCm)
	}
	if p.MainDirectionRangeMinDeg < -90 || p.MainDirectionRangeMinDeg > 90 {
		fail("main_direction_range_min_deg must be in [-90, 90], got %g", p.MainDirectionRangeMinDeg)
	}
	if p.MainDirectionRangeMaxDeg < -90 || p.MainDirectionRangeMaxDeg > 90 {
		fail("main_direction_range_max_deg must be in [-90, 90], got %g", p.MainDirectionRangeMaxDeg)
	}
	if p.MainDirectionRangeMaxDeg <= p.MainDirectionRangeMinDeg {
		fail("main_direction_range_max_deg %g must exceed main_direction_range_min_deg %g",
			p.MainDirectionRangeMaxDeg, p.MainDirectionRangeMinDeg)
	}
	if p.RandomAngleDeviationDeg < 0 {
		fail("random_angle_deviation_deg must be >= 0, got %g", p.RandomAngleDeviationDeg)
	}
	if p.MaxIterations < 1 {
		fail("max_iterations must be >= 1, got %d", p.MaxIterations)
	}
	if p.MaxDurationSec <= 0 {
		fail("max_duration_sec must be > 0, got %g", p.MaxDurationSec)
	}
	if p.MaxEvaluationAttempts < 1 {
		fail("max_evaluation_attempts must be >= 1, got %d", p.MaxEvaluationAttempts)
	}
	if p.MaxEvaluationDurationSec <= 0 {
		fail("max_evaluation_duration_sec must be > 0, got %g", p.MaxEvaluationDurationSec)
	}
	if p.MinAcceptableFitness < 0 || p.MinAcceptableFitness > 1 {
		fail("min_acceptable_fitness must be in [0, 1], got %g", p.MinAcceptableFitness)
	}
	if p.WeightPerMeter <= 0 {
		fail("weight_per_meter must be > 0, got %g", p.WeightPerMeter)
	}

	switch p.Evaluator.Type {
	case EvaluatorPassThrough:
	case EvaluatorQuality:
		if p.Evaluator.MaxHoleAreaCm2 <= 0 {
			fail("max_hole_area_cm2 must be > 0, got %g", p.Evaluator.MaxHoleAreaCm2)
		}
		if p.Evaluator.MinHoleAreaCm2 <= 0 {
			fail("min_hole_area_cm2 must be > 0, got %g", p.Evaluator.MinHoleAreaCm2)
		}
		weights := []struct {
			name  string
			value float64
		}{
			{"hole_uniformity_weight", p.Evaluator.HoleUniformityWeight},
			{"incircle_radius_weight", p.Evaluator.IncircleRadiusWeight},
			{"angle_distribution_weight", p.Evaluator.AngleDistributionWeight},
			{"horizontal_spacing_weight", p.Evaluator.HorizontalSpacingWeight},
			{"vertical_spacing_weight", p.Evaluator.VerticalSpacingWeight},
		}
		for _, w := range weights {
			if w.value < 0 || w.value > 1 {
				fail("%s must be in [0, 1], got %g", w.name, w.value)
			}
		}
	default:
		fail("evaluator type must be %q or %q, got %q", EvaluatorPassThrough, EvaluatorQuality, p.Evaluator.Type)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}
