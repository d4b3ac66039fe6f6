// Package model defines the data entities of the infill generator: frames,
// rods, anchor points, infill results, generation parameters and run
// statistics. All lengths are centimeters, all weights kilograms, all angles
// degrees.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/railgen/internal/geometry"
)

// ErrInvalidFrame is returned when a frame's boundary rods do not close into
// exactly one polygon.
var ErrInvalidFrame = errors.New("invalid frame")

// BoundaryToleranceCm enlarges the frame boundary for containment checks, so
// rods anchored on the boundary are not rejected for numerically grazing it.
const BoundaryToleranceCm = 0.1

// FrameLayer is the layer tag reserved for boundary rods. Infill rods live
// on layers >= 1.
const FrameLayer = 0

// Rod is a straight structural segment, either part of the frame boundary
// (layer 0) or of the infill (layer >= 1). Rods are immutable once created.
type Rod struct {
	ID               string           `json:"id"`
	Start            geometry.Point2D `json:"start"`
	End              geometry.Point2D `json:"end"`
	StartCutAngleDeg float64          `json:"start_cut_angle_deg"` // [-90, 90]
	EndCutAngleDeg   float64          `json:"end_cut_angle_deg"`   // [-90, 90]
	WeightPerMeter   float64          `json:"weight_per_meter"`    // kg/m
	Layer            int              `json:"layer"`
}

// NewRod creates a rod with a fresh short ID.
func NewRod(start, end geometry.Point2D, layer int, weightPerMeter, startCutDeg, endCutDeg float64) Rod {
	return Rod{
		ID:               uuid.New().String()[:8],
		Start:            start,
		End:              end,
		StartCutAngleDeg: startCutDeg,
		EndCutAngleDeg:   endCutDeg,
		WeightPerMeter:   weightPerMeter,
		Layer:            layer,
	}
}

// NewBoundaryRod creates a frame boundary rod with square end cuts.
func NewBoundaryRod(start, end geometry.Point2D, weightPerMeter float64) Rod {
	return NewRod(start, end, FrameLayer, weightPerMeter, 0, 0)
}

// Segment returns the rod's geometry.
func (r Rod) Segment() geometry.Segment {
	return geometry.Segment{A: r.Start, B: r.End}
}

// Length returns the rod length in cm.
func (r Rod) Length() float64 {
	return r.Segment().Length()
}

// WeightKg returns the rod's weight.
func (r Rod) WeightKg() float64 {
	return r.Length() / 100 * r.WeightPerMeter
}

// AngleFromVerticalDeg returns the rod's absolute deviation from vertical.
func (r Rod) AngleFromVerticalDeg() float64 {
	return r.Segment().AngleFromVerticalDeg()
}

// SignedAngleFromVerticalDeg returns the rod's signed angle from vertical in
// (-90, 90], positive when leaning right going up.
func (r Rod) SignedAngleFromVerticalDeg() float64 {
	return r.Segment().SignedAngleFromVerticalDeg()
}

// Frame is a closed polygonal boundary built from ordered layer-0 rods.
// The boundary polygon is derived from the rods, not stored.
type Frame struct {
	Rods []Rod `json:"rods"`

	boundary geometry.Ring // cached by Boundary
}

// NewFrame builds a frame from boundary rods and verifies that they close
// into exactly one polygon.
func NewFrame(rods []Rod) (*Frame, error) {
	f := &Frame{Rods: rods}
	if _, err := f.Boundary(); err != nil {
		return nil, err
	}
	return f, nil
}

// Segments returns the frame rods as raw segments, in boundary order.
func (f *Frame) Segments() []geometry.Segment {
	segs := make([]geometry.Segment, len(f.Rods))
	for i, r := range f.Rods {
		segs[i] = r.Segment()
	}
	return segs
}

// Boundary returns the frame's closed boundary ring. The ring is derived by
// noding and polygonizing the boundary rods; anything other than exactly one
// resulting polygon fails with ErrInvalidFrame. The result is cached.
func (f *Frame) Boundary() (geometry.Ring, error) {
	if f.boundary != nil {
		return f.boundary, nil
	}
	if len(f.Rods) < 3 {
		return nil, fmt.Errorf("%w: %d boundary rods, need at least 3", ErrInvalidFrame, len(f.Rods))
	}
	faces := geometry.Polygonize(geometry.NodeSegments(f.Segments()))
	if len(faces) != 1 {
		return nil, fmt.Errorf("%w: boundary rods form %d polygons, want exactly 1", ErrInvalidFrame, len(faces))
	}
	f.boundary = faces[0]
	return f.boundary, nil
}

// Diagonal returns the diagonal of the boundary's bounding box, or 0 if the
// frame is invalid.
func (f *Frame) Diagonal() float64 {
	ring, err := f.Boundary()
	if err != nil {
		return 0
	}
	return ring.Diagonal()
}

// Area returns the enclosed boundary area in cm², or 0 if the frame is
// invalid.
func (f *Frame) Area() float64 {
	ring, err := f.Boundary()
	if err != nil {
		return 0
	}
	return ring.Area()
}

// Infill is the result of one generation run: the placed rods, a snapshot of
// the anchor points they attach to, and run metadata.
type Infill struct {
	Rods           []Rod         `json:"rods"`
	AnchorPoints   []AnchorPoint `json:"anchor_points"`
	FitnessScore   *float64      `json:"fitness_score,omitempty"`
	IterationCount int           `json:"iteration_count"`
	DurationSec    float64       `json:"duration_sec"`
	IsComplete     bool          `json:"is_complete"`
}

// Fitness returns the fitness score, or 0 if the infill was never scored.
func (in *Infill) Fitness() float64 {
	if in.FitnessScore == nil {
		return 0
	}
	return *in.FitnessScore
}

// SetFitness records the fitness score.
func (in *Infill) SetFitness(score float64) {
	in.FitnessScore = &score
}

// TotalLengthCm returns the summed length of all infill rods.
func (in *Infill) TotalLengthCm() float64 {
	var total float64
	for _, r := range in.Rods {
		total += r.Length()
	}
	return total
}

// TotalWeightKg returns the summed weight of all infill rods.
func (in *Infill) TotalWeightKg() float64 {
	var total float64
	for _, r := range in.Rods {
		total += r.WeightKg()
	}
	return total
}

// LayerRods returns the infill rods on the given layer.
func (in *Infill) LayerRods(layer int) []Rod {
	var rods []Rod
	for _, r := range in.Rods {
		if r.Layer == layer {
			rods = append(rods, r)
		}
	}
	return rods
}
