package model

import "github.com/piwi3910/railgen/internal/geometry"

// AnchorPoint is a candidate attachment location for an infill rod endpoint,
// sitting on one of the frame's boundary segments. Anchor points live in a
// flat arena ([]AnchorPoint) addressed by index; the placement code mutates
// Layer and Used in place.
type AnchorPoint struct {
	Position             geometry.Point2D `json:"position"`
	FrameSegmentIndex    int              `json:"frame_segment_index"`
	IsVerticalSegment    bool             `json:"is_vertical_segment"`
	FrameSegmentAngleDeg float64          `json:"frame_segment_angle_deg"` // signed, from vertical
	Layer                int              `json:"layer"`                   // 0 until assigned
	Used                 bool             `json:"used"`
}

// CutAngleDeg returns the end cut angle for a rod with the given signed
// angle from vertical attaching at this anchor: the difference between the
// rod angle and the host segment angle, folded into [-90, 90].
func (a AnchorPoint) CutAngleDeg(rodAngleDeg float64) float64 {
	return NormalizeCutAngleDeg(rodAngleDeg - a.FrameSegmentAngleDeg)
}

// NormalizeCutAngleDeg folds an angle into [-90, 90] by reflecting it
// through ±180. A cut of 130 degrees and one of 50 degrees describe the same
// saw setting.
func NormalizeCutAngleDeg(deg float64) float64 {
	if deg > 90 {
		return 180 - deg
	}
	if deg < -90 {
		return -180 - deg
	}
	return deg
}
