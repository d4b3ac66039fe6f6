// Package engine generates rod infills for polygonal frames. A Generator
// runs the full pipeline: anchor points along the boundary segments, layer
// assignment, per-layer main directions, projection-based rod placement
// under constraints, and an outer loop that scores repeated arrangements
// with an evaluator and keeps the best one.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/piwi3910/railgen/internal/evaluator"
	"github.com/piwi3910/railgen/internal/geometry"
	"github.com/piwi3910/railgen/internal/model"
)

// ErrCancelled is returned when a run is cancelled before any arrangement
// was scored. A cancellation after the first scored arrangement returns the
// best result so far instead.
var ErrCancelled = errors.New("generation cancelled")

// ErrNoArrangement is returned when no attempt produced a scorable
// arrangement.
var ErrNoArrangement = errors.New("no arrangement produced")

// Generator produces rod infills for a frame. A Generator runs one
// generation at a time and is not safe for concurrent use; all of its
// randomness comes from the seed it was built with, so identical seed,
// frame and parameters reproduce the identical arrangement.
type Generator struct {
	params model.GenerationParams
	eval   evaluator.Evaluator
	rng    *rand.Rand
	stats  model.GenerationStatistics
}

// New validates the parameters and builds a seeded generator.
func New(params model.GenerationParams, seed int64) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	eval, err := evaluator.New(params.Evaluator)
	if err != nil {
		return nil, err
	}
	return &Generator{
		params: params,
		eval:   eval,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Statistics returns the counters of the most recent Run.
func (g *Generator) Statistics() model.GenerationStatistics {
	return g.stats
}

// Run generates arrangements until one reaches the acceptable fitness or
// the evaluation budget is exhausted, and returns the best infill found.
// Missing the fitness threshold is not an error: the best candidate is
// returned regardless. Progress updates are sent to progress (may be nil)
// without blocking; cancel (may be nil) is polled cooperatively and makes
// Run return the best result so far, or ErrCancelled if there is none yet.
func (g *Generator) Run(frame *model.Frame, cancel *CancelFlag, progress chan<- ProgressUpdate) (model.Infill, error) {
	boundary, err := frame.Boundary()
	if err != nil {
		return model.Infill{}, err
	}

	g.stats.Reset()
	g.stats.RodsRequested = g.params.NumRods

	start := time.Now()
	var best model.Infill
	bestFitness := 0.0
	haveBest := false

	attempt := 0
	for attempt < g.params.MaxEvaluationAttempts {
		attempt++
		if cancel.Cancelled() {
			break
		}
		if time.Since(start).Seconds() > g.params.MaxEvaluationDurationSec {
			break
		}

		candidate := g.generateArrangement(frame, boundary, cancel)

		if res, err := g.eval.CheckAcceptance(&candidate, frame); err == nil && !res.IsAcceptable {
			g.stats.EvaluatorRejectionsTotal++
			g.stats.EvaluatorRejectionsIncomplete += res.Reasons.Incomplete
			g.stats.EvaluatorRejectionsHoleTooLarge += res.Reasons.HoleTooLarge
			g.stats.EvaluatorRejectionsHoleTooSmall += res.Reasons.HoleTooSmall
		}

		score, err := g.eval.Evaluate(&candidate, frame)
		if err != nil {
			continue // no score, skip this candidate
		}
		candidate.SetFitness(score)

		if !haveBest || score > bestFitness {
			best = candidate
			bestFitness = score
			haveBest = true
		}

		publish(progress, ProgressUpdate{
			Iteration:   attempt,
			BestFitness: bestFitness,
			ElapsedSec:  time.Since(start).Seconds(),
		})

		if score >= g.params.MinAcceptableFitness {
			break
		}
	}

	g.stats.IterationsUsed = attempt
	g.stats.DurationSec = time.Since(start).Seconds()

	if !haveBest {
		if cancel.Cancelled() {
			return model.Infill{}, ErrCancelled
		}
		return model.Infill{}, fmt.Errorf("%w after %d attempts", ErrNoArrangement, attempt)
	}
	g.stats.RodsCreated = len(best.Rods)
	return best, nil
}

// generateArrangement runs the placement pipeline once: anchor generation,
// layer assignment, direction planning, then layer-by-layer rod placement
// under the per-arrangement iteration and duration budgets.
func (g *Generator) generateArrangement(frame *model.Frame, boundary geometry.Ring, cancel *CancelFlag) model.Infill {
	start := time.Now()

	anchors := anchorGenerator{params: g.params, rng: g.rng}
	arena := anchors.generate(frame)
	layers := assignLayers(arena, g.params.NumLayers, g.rng)
	directions := planDirections(g.params.NumLayers,
		g.params.MainDirectionRangeMinDeg, g.params.MainDirectionRangeMaxDeg)

	placer := newRodPlacer(g.params, g.rng, &g.stats, boundary)

	var rods []model.Rod
	iterations := 0
	for layer := 1; layer <= g.params.NumLayers; layer++ {
		if cancel.Cancelled() {
			break
		}
		if time.Since(start).Seconds() > g.params.MaxDurationSec {
			break
		}
		if iterations >= g.params.MaxIterations {
			break
		}
		layerRods, used := placer.placeLayer(layer, arena, layers[layer-1],
			directions[layer-1], start, iterations, cancel)
		rods = append(rods, layerRods...)
		iterations += used
	}

	return model.Infill{
		Rods:           rods,
		AnchorPoints:   arena,
		IterationCount: iterations,
		DurationSec:    time.Since(start).Seconds(),
		IsComplete:     len(rods) == g.params.NumRods,
	}
}
