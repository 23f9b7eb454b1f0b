// Package fft provides cached real-FFT plans backed by gonum's fourier
// package.
package fft

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Plan wraps a gonum real FFT for one fixed transform length.
type Plan struct {
	n   int
	fft *fourier.FFT
}

func newPlan(n int) *Plan {
	return &Plan{n: n, fft: fourier.NewFFT(n)}
}

// Len returns the transform length.
func (p *Plan) Len() int {
	return p.n
}

// Inverse converts fftLen/2+1 half-complex coefficients to a real sequence
// of fftLen samples. gonum's Sequence is unnormalized, so the result is
// scaled by 1/fftLen to give the conventional inverse transform.
func (p *Plan) Inverse(coeff []complex128) []float64 {
	seq := p.fft.Sequence(nil, coeff)
	floats.Scale(1.0/float64(p.n), seq)
	return seq
}
