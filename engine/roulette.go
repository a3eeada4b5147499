package engine

import (
	"errors"
	"math/rand"
)

// ErrNoOutcomes is returned when a weighted pick is attempted over an
// empty or zero-weight set.
var ErrNoOutcomes = errors.New("cannot pick from an empty outcome set")

// PickIndex selects an index by cumulative-weight roulette: draw a
// uniform value in [0, total), walk the weights accumulating, return
// the first index whose cumulative sum exceeds the draw. Non-positive
// weights are skipped. This is the single shared selection procedure
// for event outcomes, event types, commentary templates and tactic
// auto-picks.
func PickIndex(rng *rand.Rand, weights []float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, ErrNoOutcomes
	}

	draw := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if draw < acc {
			return i, nil
		}
	}
	// Unreachable for finite positive totals, but floating point
	// accumulation can land exactly on total.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return 0, ErrNoOutcomes
}
