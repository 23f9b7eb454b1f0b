// Package psd interpolates sparse power spectral density tables onto dense
// FFT bin-frequency grids.
package psd

import (
	"math"

	"todsim/internal/errors"
)

// Interpolate maps a sparse (freq, psd) table onto the bin frequencies
// f_i = i*rate/fftLen for i in [0, fftLen/2], using linear interpolation in
// log-log space with linear extrapolation beyond the input range.
//
// Both axes are shifted by small positive constants before taking logs so
// that zero and near-zero values stay finite: the frequency shift is one bin
// width and the PSD shift is 1% of the smallest positive PSD value. The DC
// bin of the result is forced to exactly zero; the synthesizer must not
// inject power at zero frequency.
func Interpolate(freq, psd []float64, rate float64, fftLen int) ([]float64, error) {
	if err := validate(freq, psd, rate, fftLen); err != nil {
		return nil, err
	}

	npsd := fftLen/2 + 1
	increment := rate / float64(fftLen)

	psdShift := 0.0
	for _, p := range psd {
		if p > 0 && (psdShift == 0 || p < psdShift) {
			psdShift = p
		}
	}
	if psdShift == 0 {
		// Identically-zero PSD interpolates to zero everywhere.
		return make([]float64, npsd), nil
	}
	psdShift *= 0.01

	logFreq := make([]float64, len(freq))
	logPSD := make([]float64, len(psd))
	for i := range freq {
		logFreq[i] = math.Log10(freq[i] + increment)
		logPSD[i] = math.Log10(psd[i] + psdShift)
	}

	out := make([]float64, npsd)
	seg := 0
	for i := 1; i < npsd; i++ {
		x := math.Log10(float64(i)*increment + increment)
		for seg < len(logFreq)-2 && x > logFreq[seg+1] {
			seg++
		}
		slope := (logPSD[seg+1] - logPSD[seg]) / (logFreq[seg+1] - logFreq[seg])
		y := logPSD[seg] + slope*(x-logFreq[seg])
		out[i] = math.Pow(10, y) - psdShift
	}
	// out[0] stays exactly zero regardless of the table.
	return out, nil
}

func validate(freq, psd []float64, rate float64, fftLen int) error {
	if len(freq) != len(psd) {
		return errors.InvalidInputf(
			"frequency and PSD arrays must have equal length: %d != %d", len(freq), len(psd))
	}
	if len(freq) < 2 {
		return errors.InvalidInput("PSD table needs at least two points for interpolation")
	}
	for i, f := range freq {
		if f < 0 {
			return errors.InvalidInputf("input PSD frequencies should be >= zero, got %g", f)
		}
		if i > 0 && f <= freq[i-1] {
			return errors.InvalidInput("input PSD frequencies must be strictly increasing")
		}
	}
	for _, p := range psd {
		if p < 0 {
			return errors.InvalidInputf("input PSD values should be >= zero, got %g", p)
		}
	}

	increment := rate / float64(fftLen)
	if freq[0] > increment {
		return errors.InvalidInput(
			"input PSD does not go to low enough frequency to allow for interpolation")
	}

	nyquist := rate / 2
	if math.Abs((freq[len(freq)-1]-nyquist)/nyquist) > 0.01 {
		return errors.InvalidInputf(
			"last frequency element does not match Nyquist frequency for given sample rate: %g != %g",
			freq[len(freq)-1], nyquist)
	}
	return nil
}
