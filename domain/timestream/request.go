// Package timestream defines the value types exchanged between the noise
// operator and the spectral synthesizer.
package timestream

import (
	"todsim/domain/stream"
	"todsim/internal/errors"
)

// Request is an immutable description of one noise synthesis. It fully
// determines the output timestream; there is no hidden state.
type Request struct {
	Realization uint64 // Monte Carlo realization index
	Telescope   uint64 // unique telescope index
	Component   uint64 // noise component index (detector, common mode, ...)
	ObsUID      uint64 // unique observation index
	DetIndex    uint64 // unique PSD index for this detector stream

	Rate        float64 // sample rate in Hz
	FirstSample uint64  // global index of the first output sample
	Samples     int     // number of samples to generate
	Oversample  int     // transform-length expansion factor

	Freq []float64 // PSD frequency points
	PSD  []float64 // PSD values at those points
}

// Key returns the keystream position for this request, with the counter
// placed at the first oversampled draw.
func (r Request) Key() stream.Key {
	return stream.NewKey(r.Realization, r.Telescope, r.Component, r.ObsUID, r.DetIndex).
		AtSample(r.FirstSample, r.Oversample)
}

// FFTLen returns the transform length for this request: the smallest power
// of two that can hold the oversampled window.
func (r Request) FFTLen() int {
	target := r.Oversample * r.Samples
	fftLen := 2
	for fftLen < target {
		fftLen *= 2
	}
	return fftLen
}

// Validate checks the request parameters that are independent of the PSD
// table; PSD preconditions are enforced during interpolation.
func (r Request) Validate() error {
	if r.Samples <= 0 {
		return errors.InvalidInputf("sample count must be positive, got %d", r.Samples)
	}
	if r.Rate <= 0 {
		return errors.InvalidInputf("sample rate must be positive, got %g", r.Rate)
	}
	if r.Oversample < 1 {
		return errors.InvalidInputf("oversample factor must be at least 1, got %d", r.Oversample)
	}
	return nil
}
