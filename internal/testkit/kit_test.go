package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todsim/domain/psd"
)

func TestAnalyticPSDSatisfiesInterpolatorPreconditions(t *testing.T) {
	for _, rate := range []float64{20.0, 100.0, 200.0} {
		freq, table := AnalyticPSD(rate, 1.0, 0.1, -1.0, 1e-5, 64)
		require.Len(t, table, 64)

		assert.Zero(t, freq[0])
		assert.Equal(t, rate/2, freq[len(freq)-1])
		for i := 1; i < len(freq); i++ {
			assert.Greater(t, freq[i], freq[i-1], "rate=%g index=%d", rate, i)
		}
		for i, p := range table {
			assert.False(t, p < 0 || p != p, "rate=%g psd[%d]=%g", rate, i, p)
		}

		_, err := psd.Interpolate(freq, table, rate, 4096)
		assert.NoError(t, err, "rate=%g", rate)
	}
}

func TestMemObservationAccumulates(t *testing.T) {
	ob := NewMemObservation(1, 1, []string{"a", "b"}, 100.0, 4)

	ob.EnsureDetData("noise", 4)
	require.Len(t, ob.DetData["noise"]["a"], 4)

	ob.AccumulateDetData("noise", "a", 2.0, []float64{1, 2, 3, 4})
	ob.AccumulateDetData("noise", "a", -1.0, []float64{1, 1, 1, 1})
	assert.Equal(t, []float64{1, 3, 5, 7}, ob.DetData["noise"]["a"])
	assert.Equal(t, []float64{0, 0, 0, 0}, ob.DetData["noise"]["b"])

	// EnsureDetData must not reset existing buffers.
	ob.EnsureDetData("noise", 4)
	assert.Equal(t, []float64{1, 3, 5, 7}, ob.DetData["noise"]["a"])
}

func TestLocalDetectorSelection(t *testing.T) {
	ob := NewMemObservation(1, 1, []string{"a", "b", "c"}, 100.0, 8)

	assert.Equal(t, []string{"a", "b", "c"}, ob.LocalDetectors(nil))
	assert.Equal(t, []string{"b"}, ob.LocalDetectors([]string{"b", "z"}))
	assert.Empty(t, ob.LocalDetectors([]string{}))
}
