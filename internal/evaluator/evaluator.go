// Package evaluator scores generated infills and decides whether they are
// acceptable. Evaluators are selected by the discriminator string in the
// generation parameters: "passthrough" accepts everything, "quality" judges
// the holes enclosed by the rod arrangement.
package evaluator

import (
	"fmt"

	"github.com/piwi3910/railgen/internal/model"
)

// Evaluator scores an infill against its frame. Scores are in [0, 1],
// higher is better.
type Evaluator interface {
	// Evaluate returns the fitness score of the infill.
	Evaluate(infill *model.Infill, frame *model.Frame) (float64, error)
	// CheckAcceptance returns the itemized accept/reject decision.
	CheckAcceptance(infill *model.Infill, frame *model.Frame) (EvaluationResult, error)
}

// New builds the evaluator selected by params.Type.
func New(params model.EvaluatorParams) (Evaluator, error) {
	switch params.Type {
	case model.EvaluatorPassThrough:
		return PassThrough{}, nil
	case model.EvaluatorQuality:
		return NewQuality(params), nil
	default:
		return nil, fmt.Errorf("unknown evaluator type %q", params.Type)
	}
}

// RejectionReasons itemizes why an infill was rejected. Counts are per
// offence: one per oversized or undersized hole, at most one for
// incompleteness.
type RejectionReasons struct {
	Incomplete   int `json:"incomplete"`
	HoleTooLarge int `json:"hole_too_large"`
	HoleTooSmall int `json:"hole_too_small"`
}

// Total returns the summed rejection count.
func (r RejectionReasons) Total() int {
	return r.Incomplete + r.HoleTooLarge + r.HoleTooSmall
}

// EvaluationResult is the outcome of a CheckAcceptance call.
type EvaluationResult struct {
	IsAcceptable bool             `json:"is_acceptable"`
	Reasons      RejectionReasons `json:"reasons"`
}

// Accepted returns a clean acceptance.
func Accepted() EvaluationResult {
	return EvaluationResult{IsAcceptable: true}
}

// Rejected returns a rejection carrying its reasons.
func Rejected(reasons RejectionReasons) EvaluationResult {
	return EvaluationResult{IsAcceptable: false, Reasons: reasons}
}

// PassThrough accepts every infill with a perfect score. It is the default
// evaluator: generation quality is then bounded by placement constraints
// alone.
type PassThrough struct{}

// Evaluate always returns 1.0.
func (PassThrough) Evaluate(*model.Infill, *model.Frame) (float64, error) {
	return 1.0, nil
}

// CheckAcceptance always accepts.
func (PassThrough) CheckAcceptance(*model.Infill, *model.Frame) (EvaluationResult, error) {
	return Accepted(), nil
}
