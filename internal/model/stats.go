package model

import (
	"fmt"
	"strings"
)

// GenerationStatistics collects the counters of one generation run: how many
// rods were requested and created, why candidate placements were rejected,
// and how the evaluator judged the attempts. A run resets it at the start.
type GenerationStatistics struct {
	RodsRequested int `json:"rods_requested"`
	RodsCreated   int `json:"rods_created"`

	// Placement rejection reasons.
	TooShort         int `json:"too_short"`
	TooLong          int `json:"too_long"`
	OutsideBoundary  int `json:"outside_boundary"`
	AngleTooLarge    int `json:"angle_too_large"`
	CrossesSameLayer int `json:"crosses_same_layer"`
	NoAnchorsLeft    int `json:"no_anchors_left"`

	// Evaluator rejections across outer-loop attempts.
	EvaluatorRejectionsTotal        int `json:"evaluator_rejections_total"`
	EvaluatorRejectionsIncomplete   int `json:"evaluator_rejections_incomplete"`
	EvaluatorRejectionsHoleTooLarge int `json:"evaluator_rejections_hole_too_large"`
	EvaluatorRejectionsHoleTooSmall int `json:"evaluator_rejections_hole_too_small"`

	IterationsUsed int     `json:"iterations_used"`
	DurationSec    float64 `json:"duration_sec"`
}

// Reset zeroes all counters.
func (s *GenerationStatistics) Reset() {
	*s = GenerationStatistics{}
}

// TotalFailures returns the number of rejected placement candidates.
func (s *GenerationStatistics) TotalFailures() int {
	return s.TooShort + s.TooLong + s.OutsideBoundary + s.AngleTooLarge +
		s.CrossesSameLayer + s.NoAnchorsLeft
}

// SuccessRate returns created rods over attempted placements, in [0, 1].
func (s *GenerationStatistics) SuccessRate() float64 {
	attempts := s.RodsCreated + s.TotalFailures()
	if attempts == 0 {
		return 0
	}
	return float64(s.RodsCreated) / float64(attempts)
}

// String renders a human-readable summary of the run.
func (s *GenerationStatistics) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rods: %d/%d created", s.RodsCreated, s.RodsRequested)
	fmt.Fprintf(&b, " (%.0f%% placement success)\n", s.SuccessRate()*100)
	fmt.Fprintf(&b, "rejections: %d too short, %d too long, %d outside boundary, %d angle too large, %d crossing, %d no anchors left\n",
		s.TooShort, s.TooLong, s.OutsideBoundary, s.AngleTooLarge, s.CrossesSameLayer, s.NoAnchorsLeft)
	if s.EvaluatorRejectionsTotal > 0 {
		fmt.Fprintf(&b, "evaluator: %d rejections (%d incomplete, %d hole too large, %d hole too small)\n",
			s.EvaluatorRejectionsTotal, s.EvaluatorRejectionsIncomplete,
			s.EvaluatorRejectionsHoleTooLarge, s.EvaluatorRejectionsHoleTooSmall)
	}
	fmt.Fprintf(&b, "iterations: %d, duration: %.2fs", s.IterationsUsed, s.DurationSec)
	return b.String()
}
