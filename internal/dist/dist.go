// =============================================================================
// EPOS Data Generator - Discrete Distributions
// =============================================================================
//
// This module provides the weighted discrete distribution value object used
// uniformly for status, payment-method, category, basket-size and quantity
// sampling: a fixed outcome list with weights and a single Sample operation.
//
// DETERMINISM:
//   Distributions hold no random state of their own. Every Sample call takes
//   the caller's *rand.Rand, which is seeded once at batch start, so two runs
//   with the same seed draw identical sequences.
//
// =============================================================================

package dist

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"sort"
)

// Discrete is a weighted distribution over a fixed set of outcomes.
type Discrete[T comparable] struct {
	outcomes []T
	cum      []float64
	total    float64
}

// New builds a distribution from parallel outcome and weight slices.
//
// RETURNS an error when the slices differ in length, any weight is negative,
// or the total weight is zero.
func New[T comparable](outcomes []T, weights []float64) (*Discrete[T], error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("distribution needs at least one outcome")
	}
	if len(outcomes) != len(weights) {
		return nil, fmt.Errorf("distribution has %d outcomes but %d weights", len(outcomes), len(weights))
	}

	d := &Discrete[T]{
		outcomes: slices.Clone(outcomes),
		cum:      make([]float64, len(weights)),
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative weight %v for outcome %v", w, outcomes[i])
		}
		d.total += w
		d.cum[i] = d.total
	}
	if d.total <= 0 {
		return nil, fmt.Errorf("total weight must be positive")
	}
	return d, nil
}

// FromMap builds a distribution from a weight map. Keys are sorted so the
// internal outcome order, and therefore the sampling sequence for a given
// seed, does not depend on Go map iteration order.
func FromMap[T cmp.Ordered](weights map[T]float64) (*Discrete[T], error) {
	keys := make([]T, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = weights[k]
	}
	return New(keys, ws)
}

// Sample draws one outcome using the supplied random source.
func (d *Discrete[T]) Sample(rng *rand.Rand) T {
	r := rng.Float64() * d.total
	i := sort.SearchFloat64s(d.cum, r)
	if i >= len(d.outcomes) {
		i = len(d.outcomes) - 1
	}
	return d.outcomes[i]
}

// Outcomes returns the outcome list in internal order.
func (d *Discrete[T]) Outcomes() []T {
	return slices.Clone(d.outcomes)
}

// Weight returns the normalized probability of the given outcome.
func (d *Discrete[T]) Weight(outcome T) float64 {
	prev := 0.0
	for i, o := range d.outcomes {
		if o == outcome {
			return (d.cum[i] - prev) / d.total
		}
		prev = d.cum[i]
	}
	return 0
}
