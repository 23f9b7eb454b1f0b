package testkit

import (
	"math"

	"todsim/domain/psd"
	"todsim/domain/timestream"
	"todsim/ports"
)

// ReferenceSynthesizer is a deliberately slow synthesizer that shares only
// the keystream and interpolation contracts with the production path. The
// inverse transform is a direct O(n^2) real DFT written against the
// definition, so equivalence tests catch mistakes in the fourier-backed
// implementation rather than reproducing them.
type ReferenceSynthesizer struct {
	Keystream ports.KeystreamPort
}

// Synthesize generates the noise timestream for one request using the
// direct-summation inverse transform.
func (s *ReferenceSynthesizer) Synthesize(req timestream.Request) ([]float64, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fftLen := req.FFTLen()
	npsd := fftLen/2 + 1
	norm := req.Rate * float64(npsd-1)

	psdInterp, err := psd.Interpolate(req.Freq, req.PSD, req.Rate, fftLen)
	if err != nil {
		return nil, err
	}

	draws := s.Keystream.Gaussian(req.Key(), fftLen)

	re := make([]float64, npsd)
	im := make([]float64, npsd)
	for i := 0; i < npsd; i++ {
		scale := math.Sqrt(psdInterp[i] * norm)
		re[i] = draws[i] * scale
		if i > 0 && i < npsd-1 {
			im[i] = draws[fftLen-i] * scale
		}
	}

	// Direct inverse of the half-complex spectrum of a real sequence:
	// x[t] = (1/N) [X_0 + (-1)^t X_{N/2} + 2 sum_k (Re_k cos - Im_k sin)].
	full := make([]float64, fftLen)
	for t := 0; t < fftLen; t++ {
		sum := re[0]
		for k := 1; k < npsd-1; k++ {
			theta := 2 * math.Pi * float64(k) * float64(t) / float64(fftLen)
			sum += 2 * (re[k]*math.Cos(theta) - im[k]*math.Sin(theta))
		}
		if t%2 == 0 {
			sum += re[npsd-1]
		} else {
			sum -= re[npsd-1]
		}
		full[t] = sum / float64(fftLen)
	}

	offset := (fftLen - req.Samples) / 2
	out := make([]float64, req.Samples)
	copy(out, full[offset:offset+req.Samples])

	mean := 0.0
	for _, v := range out {
		mean += v
	}
	mean /= float64(len(out))
	for i := range out {
		out[i] -= mean
	}
	return out, nil
}
