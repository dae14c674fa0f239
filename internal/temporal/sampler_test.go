package temporal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eposforge/epos-datagen/internal/config"
)

func januaryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.StartDate = "2024-01-01"
	cfg.EndDate = "2024-01-31"
	require.NoError(t, cfg.Resolve())
	return cfg
}

func TestSampleStaysInsideWindow(t *testing.T) {
	cfg := januaryConfig(t)
	s, err := NewSampler(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		ts := s.Sample(rng)

		assert.Equal(t, 2024, ts.Year())
		assert.Equal(t, time.January, ts.Month())
		assert.GreaterOrEqual(t, ts.Hour(), cfg.BusinessHours.Open)
		assert.Less(t, ts.Hour(), cfg.BusinessHours.Close)
	}
}

func TestSampleIsDeterministicPerSeed(t *testing.T) {
	cfg := januaryConfig(t)
	s, err := NewSampler(cfg)
	require.NoError(t, err)

	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		assert.True(t, s.Sample(a).Equal(s.Sample(b)))
	}
}

func TestSeriesRestartsIdentically(t *testing.T) {
	cfg := januaryConfig(t)
	s, err := NewSampler(cfg)
	require.NoError(t, err)

	collect := func() []time.Time {
		next := s.Series(99, 50)
		var out []time.Time
		for {
			ts, ok := next()
			if !ok {
				break
			}
			out = append(out, ts)
		}
		return out
	}

	first := collect()
	second := collect()
	assert.Len(t, first, 50)
	assert.Equal(t, first, second)
}

func TestPeakHoursReceiveMoreVolume(t *testing.T) {
	cfg := januaryConfig(t)
	s, err := NewSampler(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	counts := make(map[int]int)
	const n = 50000
	for i := 0; i < n; i++ {
		counts[s.Sample(rng).Hour()]++
	}

	// Dinner peak (weight 3.0) should clearly dominate an off-peak hour.
	assert.Greater(t, counts[19], 2*counts[10])
	// Lunch peak (weight 2.0) should beat off-peak too.
	assert.Greater(t, counts[13], counts[10])
}

func TestWeekendBoostShowsInDayMix(t *testing.T) {
	cfg := januaryConfig(t)
	cfg.WeekendBoost = 2.0
	require.NoError(t, cfg.Resolve())

	s, err := NewSampler(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	var weekend, weekday int
	const n = 50000
	for i := 0; i < n; i++ {
		switch s.Sample(rng).Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		default:
			weekday++
		}
	}

	// January 2024 has 8 weekend days and 23 weekdays. With a 2x boost the
	// per-day weekend rate should be roughly double the weekday rate.
	perWeekendDay := float64(weekend) / 8
	perWeekday := float64(weekday) / 23
	assert.InDelta(t, 2.0, perWeekendDay/perWeekday, 0.2)
}
