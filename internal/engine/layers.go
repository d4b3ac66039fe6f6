package engine

import (
	"math/rand"

	"github.com/piwi3910/railgen/internal/model"
)

// assignLayers shuffles the anchor arena and assigns layers round-robin, so
// per-layer counts differ by at most one. It mutates the Layer field of the
// arena entries and returns the arena indices grouped by layer, with group 0
// holding layer 1.
func assignLayers(arena []model.AnchorPoint, numLayers int, rng *rand.Rand) [][]int {
	layers := make([][]int, numLayers)
	for i, arenaIdx := range rng.Perm(len(arena)) {
		layer := i%numLayers + 1
		arena[arenaIdx].Layer = layer
		layers[layer-1] = append(layers[layer-1], arenaIdx)
	}
	return layers
}

// planDirections returns the main placement direction of each layer, spread
// evenly across the configured range. A single layer gets the midpoint of
// the range. Index 0 holds layer 1.
func planDirections(numLayers int, minDeg, maxDeg float64) []float64 {
	directions := make([]float64, numLayers)
	if numLayers == 1 {
		directions[0] = (minDeg + maxDeg) / 2
		return directions
	}
	for i := range directions {
		t := float64(i) / float64(numLayers-1)
		directions[i] = minDeg + t*(maxDeg-minDeg)
	}
	return directions
}
