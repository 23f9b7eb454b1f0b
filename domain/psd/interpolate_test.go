package psd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todsim/internal/errors"
)

const (
	testRate   = 100.0
	testFFTLen = 2048
)

func TestFlatPSDRoundTrip(t *testing.T) {
	freq := []float64{0, testRate / 2}
	psd := []float64{1, 1}

	out, err := Interpolate(freq, psd, testRate, testFFTLen)
	require.NoError(t, err)
	require.Len(t, out, testFFTLen/2+1)

	assert.Zero(t, out[0], "DC bin must be exactly zero")
	for i := 1; i < len(out); i++ {
		assert.InDelta(t, 1.0, out[i], 1e-6, "bin %d", i)
	}
}

func TestDCSuppressionWithNonzeroDCInput(t *testing.T) {
	freq := []float64{0, 1, testRate / 2}
	psd := []float64{100, 10, 1}

	out, err := Interpolate(freq, psd, testRate, testFFTLen)
	require.NoError(t, err)
	assert.Zero(t, out[0])
	assert.Positive(t, out[1])
}

func TestZeroPSDInterpolatesToZero(t *testing.T) {
	freq := []float64{0, testRate / 2}
	psd := []float64{0, 0}

	out, err := Interpolate(freq, psd, testRate, testFFTLen)
	require.NoError(t, err)
	for i, v := range out {
		assert.Zero(t, v, "bin %d", i)
	}
}

func TestLogInterpolationFollowsPowerLaw(t *testing.T) {
	// psd = 1/f sampled sparsely should interpolate close to 1/f on the
	// dense grid, since a power law is linear in log-log space.
	freq := []float64{0, 0.01, 0.1, 1, 10, testRate / 2}
	psd := make([]float64, len(freq))
	psd[0] = 100 // value at f=0 irrelevant after shifting
	for i := 1; i < len(freq); i++ {
		psd[i] = 1 / freq[i]
	}

	out, err := Interpolate(freq, psd, testRate, testFFTLen)
	require.NoError(t, err)

	for i := 64; i < len(out); i += 64 {
		binFreq := float64(i) * testRate / testFFTLen
		assert.InEpsilon(t, 1/binFreq, out[i], 0.05, "bin %d at %.3f Hz", i, binFreq)
	}
}

func TestInterpolateRejectsBadTables(t *testing.T) {
	nyquist := testRate / 2

	cases := []struct {
		name string
		freq []float64
		psd  []float64
	}{
		{"negative frequency", []float64{-1, nyquist}, []float64{1, 1}},
		{"negative psd", []float64{0, nyquist}, []float64{1, -1}},
		{"insufficient low coverage", []float64{1, nyquist}, []float64{1, 1}},
		{"off-nyquist", []float64{0, nyquist * 0.95}, []float64{1, 1}},
		{"not increasing", []float64{0, 0, nyquist}, []float64{1, 1, 1}},
		{"length mismatch", []float64{0, nyquist}, []float64{1}},
		{"too short", []float64{nyquist}, []float64{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Interpolate(tc.freq, tc.psd, testRate, testFFTLen)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidInput),
				"expected INVALID_INPUT, got %q", errors.GetCode(err))
		})
	}
}

func TestNyquistToleranceBoundary(t *testing.T) {
	nyquist := testRate / 2

	_, err := Interpolate([]float64{0, nyquist * 1.009}, []float64{1, 1}, testRate, testFFTLen)
	assert.NoError(t, err, "within 1% of Nyquist is acceptable")

	_, err = Interpolate([]float64{0, nyquist * 1.02}, []float64{1, 1}, testRate, testFFTLen)
	assert.Error(t, err, "beyond 1% of Nyquist is rejected")
}
