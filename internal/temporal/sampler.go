// =============================================================================
// EPOS Data Generator - Temporal Sampler
// =============================================================================
//
// This module produces transaction timestamps. The algorithm is layered:
//
//   1. Pick a calendar date within [start_date, end_date], with weekend days
//      weighted by the configured boost.
//   2. Pick an hour within [open, close), weighted toward the configured
//      peak windows (lunch and dinner by default).
//   3. Pick minute and second uniformly.
//
// The business window is a hard invariant, not a tendency: the hour
// distribution is built only over [open, close), so a timestamp outside the
// window cannot be emitted.
//
// The sampler itself is stateless; the sequence it produces is a function of
// the random source handed to Sample. Re-seeding the source restarts the
// sequence from the beginning.
//
// =============================================================================

package temporal

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/eposforge/epos-datagen/internal/config"
	"github.com/eposforge/epos-datagen/internal/dist"
)

// Sampler draws timestamps honoring the configured calendar range, business
// hours and volume weighting.
type Sampler struct {
	start    time.Time
	hourDist *dist.Discrete[int]
	dayDist  *dist.Discrete[int]
}

// NewSampler builds a sampler from a resolved configuration.
func NewSampler(cfg *config.Config) (*Sampler, error) {
	days := int(cfg.End().Sub(cfg.Start()).Hours()/24) + 1

	// Day-offset distribution with weekend boost.
	dayOffsets := make([]int, days)
	dayWeights := make([]float64, days)
	for d := 0; d < days; d++ {
		dayOffsets[d] = d
		w := 1.0
		switch cfg.Start().AddDate(0, 0, d).Weekday() {
		case time.Saturday, time.Sunday:
			w = cfg.WeekendBoost
		}
		dayWeights[d] = w
	}
	dayDist, err := dist.New(dayOffsets, dayWeights)
	if err != nil {
		return nil, fmt.Errorf("failed to build day distribution: %w", err)
	}

	// Hour distribution over [open, close), boosted inside peak windows.
	var hours []int
	var hourWeights []float64
	for h := cfg.BusinessHours.Open; h < cfg.BusinessHours.Close; h++ {
		w := 1.0
		for _, p := range cfg.PeakHours {
			if h >= p.From && h < p.To {
				w = p.Weight
			}
		}
		hours = append(hours, h)
		hourWeights = append(hourWeights, w)
	}
	hourDist, err := dist.New(hours, hourWeights)
	if err != nil {
		return nil, fmt.Errorf("failed to build hour distribution: %w", err)
	}

	return &Sampler{
		start:    cfg.Start(),
		hourDist: hourDist,
		dayDist:  dayDist,
	}, nil
}

// Sample draws one timestamp using the supplied random source.
func (s *Sampler) Sample(rng *rand.Rand) time.Time {
	day := s.dayDist.Sample(rng)
	hour := s.hourDist.Sample(rng)
	minute := rng.Intn(60)
	second := rng.Intn(60)

	return s.start.AddDate(0, 0, day).
		Add(time.Duration(hour)*time.Hour +
			time.Duration(minute)*time.Minute +
			time.Duration(second)*time.Second)
}

// Series returns a lazy, finite iterator over n timestamps drawn from a
// fresh source seeded with seed. Calling Series again with the same
// arguments restarts the identical sequence.
func (s *Sampler) Series(seed int64, n int) func() (time.Time, bool) {
	rng := rand.New(rand.NewSource(seed))
	remaining := n
	return func() (time.Time, bool) {
		if remaining <= 0 {
			return time.Time{}, false
		}
		remaining--
		return s.Sample(rng), true
	}
}
