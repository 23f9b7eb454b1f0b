package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"todsim/adapters/fft"
	"todsim/adapters/rng"
	"todsim/domain/timestream"
	"todsim/internal/errors"
	"todsim/internal/testkit"
)

func flatRequest(samples int, rate float64) timestream.Request {
	freq, psd := testkit.FlatPSD(rate, 1.0)
	return timestream.Request{
		Realization: 0,
		Telescope:   1,
		Component:   0,
		ObsUID:      42,
		DetIndex:    7,
		Rate:        rate,
		Samples:     samples,
		Oversample:  2,
		Freq:        freq,
		PSD:         psd,
	}
}

func newSynthesizer() *Synthesizer {
	return NewSynthesizer(rng.NewThreefry(), fft.NewStore())
}

func TestFlatPSDScenario(t *testing.T) {
	req := flatRequest(1024, 100.0)
	require.Equal(t, 2048, req.FFTLen())

	tdata, binFreq, psdInterp, err := newSynthesizer().SynthesizeDiagnostic(req)
	require.NoError(t, err)

	require.Len(t, tdata, 1024)
	require.Len(t, psdInterp, 1025)
	require.Len(t, binFreq, 1025)

	assert.InDelta(t, 100.0/2048, binFreq[1], 1e-12)
	assert.Zero(t, psdInterp[0])

	assert.InDelta(t, 0.0, stat.Mean(tdata, nil), 1e-9,
		"returned window must be zero-mean")

	// With norm = rate*(npsd-1) and unit-variance draws in every bin, a flat
	// PSD of p synthesizes to sample variance p*rate (Parseval over the
	// Hermitian spectrum), here 100.
	variance := stat.Variance(tdata, nil)
	assert.InEpsilon(t, 100.0, variance, 0.2)
}

func TestSynthesizeDeterminism(t *testing.T) {
	req := flatRequest(512, 100.0)

	first, err := newSynthesizer().Synthesize(req)
	require.NoError(t, err)
	second, err := newSynthesizer().Synthesize(req)
	require.NoError(t, err)

	require.Equal(t, first, second, "independent synthesizers must agree bit-for-bit")
}

func TestDistinctIdentifiersProduceDistinctNoise(t *testing.T) {
	synth := newSynthesizer()

	base, err := synth.Synthesize(flatRequest(256, 100.0))
	require.NoError(t, err)

	other := flatRequest(256, 100.0)
	other.Realization = 1
	changed, err := synth.Synthesize(other)
	require.NoError(t, err)

	assert.NotEqual(t, base, changed)
}

func TestSynthesizeMatchesReference(t *testing.T) {
	keystream := rng.NewThreefry()
	production := NewSynthesizer(keystream, fft.NewStore())
	reference := &testkit.ReferenceSynthesizer{Keystream: keystream}

	for _, samples := range []int{17, 32, 100} {
		req := flatRequest(samples, 50.0)

		fast, err := production.Synthesize(req)
		require.NoError(t, err)
		slow, err := reference.Synthesize(req)
		require.NoError(t, err)

		require.Len(t, slow, samples)
		for i := range fast {
			assert.InDelta(t, slow[i], fast[i], 1e-8, "samples=%d index=%d", samples, i)
		}
	}
}

func TestSynthesizePropagatesPSDErrors(t *testing.T) {
	req := flatRequest(256, 100.0)
	req.Freq = []float64{1.0, 50.0} // no low-frequency coverage

	_, err := newSynthesizer().Synthesize(req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
}

func TestSynthesizeRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*timestream.Request)
	}{
		{"zero samples", func(r *timestream.Request) { r.Samples = 0 }},
		{"zero rate", func(r *timestream.Request) { r.Rate = 0 }},
		{"zero oversample", func(r *timestream.Request) { r.Oversample = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := flatRequest(256, 100.0)
			tc.mutate(&req)
			_, err := newSynthesizer().Synthesize(req)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
		})
	}
}

func TestFFTLenSelection(t *testing.T) {
	cases := []struct {
		samples    int
		oversample int
		fftLen     int
	}{
		{1024, 2, 2048},
		{1000, 2, 2048},
		{1025, 2, 4096},
		{3, 1, 4},
		{1, 1, 2},
	}
	for _, tc := range cases {
		req := timestream.Request{Samples: tc.samples, Oversample: tc.oversample}
		assert.Equal(t, tc.fftLen, req.FFTLen(), "samples=%d oversample=%d", tc.samples, tc.oversample)
	}
}
