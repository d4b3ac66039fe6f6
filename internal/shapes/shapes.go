// Package shapes builds frames for the common railing geometries. Each
// builder returns a Frame whose boundary rods close into a single polygon.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/railgen/internal/model"
)

// Shape type discriminators.
const (
	TypeRectangular   = "rectangular"
	TypeParallelogram = "parallelogram"
	TypeStaircase     = "staircase"
)

// ErrUnknownShapeType is returned by Build for a type string that no
// builder claims.
var ErrUnknownShapeType = errors.New("unknown shape type")

// ErrInvalidShapeParams is returned when shape parameters are out of range.
var ErrInvalidShapeParams = errors.New("invalid shape parameters")

// Params carries the union of all shape parameters. Type picks the builder
// and decides which of the remaining fields apply.
type Params struct {
	Type string `json:"type" toml:"type"`

	// Rectangular.
	WidthCm  float64 `json:"width_cm,omitempty" toml:"width_cm"`
	HeightCm float64 `json:"height_cm,omitempty" toml:"height_cm"`

	// Parallelogram and staircase posts.
	PostLengthCm float64 `json:"post_length_cm,omitempty" toml:"post_length_cm"`

	// Parallelogram slope between the post bases.
	SlopeWidthCm  float64 `json:"slope_width_cm,omitempty" toml:"slope_width_cm"`
	SlopeHeightCm float64 `json:"slope_height_cm,omitempty" toml:"slope_height_cm"`

	// Staircase run, rise and step count.
	StairWidthCm  float64 `json:"stair_width_cm,omitempty" toml:"stair_width_cm"`
	StairHeightCm float64 `json:"stair_height_cm,omitempty" toml:"stair_height_cm"`
	NumSteps      int     `json:"num_steps,omitempty" toml:"num_steps"`

	FrameWeightPerMeter float64 `json:"frame_weight_per_meter" toml:"frame_weight_per_meter"`
}

// Available lists the shape types Build accepts, in menu order.
func Available() []string {
	return []string{TypeRectangular, TypeParallelogram, TypeStaircase}
}

// DefaultParams returns the stock parameters for the given shape type.
func DefaultParams(shapeType string) (Params, error) {
	switch shapeType {
	case TypeRectangular:
		return Params{
			Type:                TypeRectangular,
			WidthCm:             200,
			HeightCm:            100,
			FrameWeightPerMeter: 0.5,
		}, nil
	case TypeParallelogram:
		return Params{
			Type:                TypeParallelogram,
			PostLengthCm:        100,
			SlopeWidthCm:        300,
			SlopeHeightCm:       150,
			FrameWeightPerMeter: 0.5,
		}, nil
	case TypeStaircase:
		return Params{
			Type:                TypeStaircase,
			PostLengthCm:        150,
			StairWidthCm:        280,
			StairHeightCm:       280,
			NumSteps:            10,
			FrameWeightPerMeter: 0.5,
		}, nil
	default:
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownShapeType, shapeType)
	}
}

// Validate checks the fields relevant to the selected shape type.
func (p Params) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.FrameWeightPerMeter <= 0 {
		fail("frame_weight_per_meter must be > 0, got %g", p.FrameWeightPerMeter)
	}
	switch p.Type {
	case TypeRectangular:
		if p.WidthCm <= 0 {
			fail("width_cm must be > 0, got %g", p.WidthCm)
		}
		if p.HeightCm <= 0 {
			fail("height_cm must be > 0, got %g", p.HeightCm)
		}
	case TypeParallelogram:
		if p.PostLengthCm <= 0 {
			fail("post_length_cm must be > 0, got %g", p.PostLengthCm)
		}
		if p.SlopeWidthCm <= 0 {
			fail("slope_width_cm must be > 0, got %g", p.SlopeWidthCm)
		}
		if p.SlopeHeightCm <= 0 {
			fail("slope_height_cm must be > 0, got %g", p.SlopeHeightCm)
		}
	case TypeStaircase:
		if p.PostLengthCm <= 0 {
			fail("post_length_cm must be > 0, got %g", p.PostLengthCm)
		}
		if p.StairWidthCm <= 0 {
			fail("stair_width_cm must be > 0, got %g", p.StairWidthCm)
		}
		if p.StairHeightCm <= 0 {
			fail("stair_height_cm must be > 0, got %g", p.StairHeightCm)
		}
		if p.NumSteps < 1 || p.NumSteps > 50 {
			fail("num_steps must be in [1, 50], got %d", p.NumSteps)
		}
	default:
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownShapeType, p.Type,
			strings.Join(Available(), ", "))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidShapeParams, errors.Join(errs...))
}

// Build validates the parameters and constructs the frame for p.Type.
func Build(p Params) (*model.Frame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Type {
	case TypeRectangular:
		return buildRectangular(p)
	case TypeParallelogram:
		return buildParallelogram(p)
	default:
		return buildStaircase(p)
	}
}
