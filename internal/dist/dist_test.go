package dist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New([]string{}, []float64{})
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, []float64{1.0})
	assert.Error(t, err)

	_, err = New([]string{"a"}, []float64{-0.5})
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, []float64{0, 0})
	assert.Error(t, err)
}

func TestSampleIsDeterministic(t *testing.T) {
	d, err := New([]string{"x", "y", "z"}, []float64{0.2, 0.3, 0.5})
	require.NoError(t, err)

	first := make([]string, 100)
	rng := rand.New(rand.NewSource(7))
	for i := range first {
		first[i] = d.Sample(rng)
	}

	rng = rand.New(rand.NewSource(7))
	for i := range first {
		assert.Equal(t, first[i], d.Sample(rng))
	}
}

func TestSampleConvergesToWeights(t *testing.T) {
	d, err := New([]string{"a", "b", "c"}, []float64{0.6, 0.3, 0.1})
	require.NoError(t, err)

	const n = 200000
	counts := make(map[string]int)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		counts[d.Sample(rng)]++
	}

	assert.InDelta(t, 0.6, float64(counts["a"])/n, 0.01)
	assert.InDelta(t, 0.3, float64(counts["b"])/n, 0.01)
	assert.InDelta(t, 0.1, float64(counts["c"])/n, 0.01)
}

func TestFromMapOrderIndependent(t *testing.T) {
	// Two maps with identical content must sample identically for the same
	// seed, whatever Go's map iteration did during construction.
	m1 := map[string]float64{"red": 0.5, "green": 0.3, "blue": 0.2}
	m2 := map[string]float64{"blue": 0.2, "red": 0.5, "green": 0.3}

	d1, err := FromMap(m1)
	require.NoError(t, err)
	d2, err := FromMap(m2)
	require.NoError(t, err)

	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		assert.Equal(t, d1.Sample(r1), d2.Sample(r2))
	}
}

func TestWeight(t *testing.T) {
	d, err := New([]int{1, 2, 3}, []float64{1, 1, 2})
	require.NoError(t, err)

	assert.InDelta(t, 0.25, d.Weight(1), 1e-9)
	assert.InDelta(t, 0.25, d.Weight(2), 1e-9)
	assert.InDelta(t, 0.50, d.Weight(3), 1e-9)
	assert.Zero(t, d.Weight(42))
}
