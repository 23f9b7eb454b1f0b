package testkit

import (
	"math"
)

// FlatPSD returns the simplest valid PSD table: a constant level from DC to
// the Nyquist frequency of the given rate.
func FlatPSD(rate, level float64) (freq, psd []float64) {
	return []float64{0, rate / 2}, []float64{level, level}
}

// AnalyticPSD builds a 1/f noise model table over n points:
//
//	psd(f) = net^2 * (f^alpha + fknee^alpha) / (f^alpha + fmin^alpha)
//
// The grid starts at DC and runs log-spaced up to exactly the Nyquist
// frequency, so it satisfies the interpolator's coverage preconditions for
// any transform length.
func AnalyticPSD(rate, net, fknee, alpha, fmin float64, n int) (freq, psd []float64) {
	freq = make([]float64, n)
	psd = make([]float64, n)

	nyquist := rate / 2
	// Four decades below Nyquist for the first nonzero point.
	lo := math.Log10(nyquist) - 4
	hi := math.Log10(nyquist)
	for i := 1; i < n; i++ {
		freq[i] = math.Pow(10, lo+(hi-lo)*float64(i-1)/float64(n-2))
	}
	freq[n-1] = nyquist

	net2 := net * net
	for i, f := range freq {
		if f == 0 && alpha < 0 {
			// f^alpha dominates both numerator and denominator.
			psd[i] = net2
			continue
		}
		fa := math.Pow(f, alpha)
		psd[i] = net2 * (fa + math.Pow(fknee, alpha)) / (fa + math.Pow(fmin, alpha))
	}
	return freq, psd
}
