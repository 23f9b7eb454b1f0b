// Package app wires the noise-synthesis services together behind the ports.
package app

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"todsim/domain/psd"
	"todsim/domain/timestream"
	"todsim/ports"
)

// Synthesizer realizes noise timestreams from PSD tables. Unit-variance
// Gaussian draws from the keystream are shaped in the Fourier domain to
// match the target PSD, inverse transformed, and cropped.
type Synthesizer struct {
	keystream ports.KeystreamPort
	plans     ports.PlanStorePort
}

// NewSynthesizer creates a synthesizer using the given keystream generator
// and transform plan store.
func NewSynthesizer(keystream ports.KeystreamPort, plans ports.PlanStorePort) *Synthesizer {
	return &Synthesizer{keystream: keystream, plans: plans}
}

// Synthesize generates the noise timestream for one request. The output has
// length req.Samples, is zero-mean over exactly that window, and is
// bit-identical for identical requests.
func (s *Synthesizer) Synthesize(req timestream.Request) ([]float64, error) {
	tdata, _, _, err := s.synthesize(req, false)
	return tdata, err
}

// SynthesizeDiagnostic generates the noise timestream along with the
// interpolated frequency grid and PSD that shaped it, for validation against
// the requested spectrum.
func (s *Synthesizer) SynthesizeDiagnostic(req timestream.Request) (tdata, binFreq, psdInterp []float64, err error) {
	return s.synthesize(req, true)
}

func (s *Synthesizer) synthesize(req timestream.Request, diagnostic bool) ([]float64, []float64, []float64, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, nil, err
	}

	fftLen := req.FFTLen()
	npsd := fftLen/2 + 1
	norm := req.Rate * float64(npsd-1)

	psdInterp, err := psd.Interpolate(req.Freq, req.PSD, req.Rate, fftLen)
	if err != nil {
		return nil, nil, nil, err
	}

	scale := make([]float64, npsd)
	for i, p := range psdInterp {
		scale[i] = math.Sqrt(p * norm)
	}

	// One draw per oversampled sample position; the counter starts at
	// firstSample*oversample so chunked requests stay consistent.
	draws := s.keystream.Gaussian(req.Key(), fftLen)

	// Hermitian packing: DC and Nyquist bins are purely real, interior bin i
	// takes its real part from draws[i] and its imaginary part from the tail
	// of the draw array in reverse, draws[fftLen-i]. The packing order is
	// part of the reproducibility contract; do not reorder it.
	fdata := make([]complex128, npsd)
	fdata[0] = complex(draws[0]*scale[0], 0)
	fdata[npsd-1] = complex(draws[npsd-1]*scale[npsd-1], 0)
	for i := 1; i < npsd-1; i++ {
		fdata[i] = complex(draws[i]*scale[i], draws[fftLen-i]*scale[i])
	}

	full := s.plans.Plan(fftLen).Inverse(fdata)

	// Crop the center of the oversampled sequence so periodic-boundary
	// wraparound stays outside the returned window, then remove the mean of
	// that window alone.
	offset := (fftLen - req.Samples) / 2
	tdata := make([]float64, req.Samples)
	copy(tdata, full[offset:offset+req.Samples])
	floats.AddConst(-stat.Mean(tdata, nil), tdata)

	if !diagnostic {
		return tdata, nil, nil, nil
	}

	binFreq := make([]float64, npsd)
	for i := range binFreq {
		binFreq[i] = float64(i) * req.Rate / float64(fftLen)
	}
	return tdata, binFreq, psdInterp, nil
}
