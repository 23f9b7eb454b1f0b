// Package timing derives sampling parameters from shared timestamp arrays.
package timing

import (
	"github.com/montanaflynn/stats"

	"todsim/internal/errors"
)

// RateInfo summarizes the sample spacing of a timestamp array.
type RateInfo struct {
	Rate  float64 // 1 / mean spacing, in Hz
	DT    float64 // mean spacing
	DTMin float64
	DTMax float64
	DTStd float64
}

// RateFromTimes derives the sample rate from a shared timestamp array as the
// inverse of the mean spacing. The spread statistics let callers decide
// whether the sampling is regular enough for their purposes.
func RateFromTimes(times []float64) (RateInfo, error) {
	if len(times) < 2 {
		return RateInfo{}, errors.InvalidInputf(
			"need at least two timestamps to derive a sample rate, got %d", len(times))
	}

	diffs := make([]float64, len(times)-1)
	for i := range diffs {
		diffs[i] = times[i+1] - times[i]
	}

	dt, err := stats.Mean(diffs)
	if err != nil {
		return RateInfo{}, errors.Wrap(err, "failed to compute mean timestamp spacing")
	}
	if dt <= 0 {
		return RateInfo{}, errors.InvalidInput("timestamps must be strictly increasing on average")
	}
	dtMin, err := stats.Min(diffs)
	if err != nil {
		return RateInfo{}, errors.Wrap(err, "failed to compute minimum timestamp spacing")
	}
	dtMax, err := stats.Max(diffs)
	if err != nil {
		return RateInfo{}, errors.Wrap(err, "failed to compute maximum timestamp spacing")
	}
	dtStd, err := stats.StandardDeviation(diffs)
	if err != nil {
		return RateInfo{}, errors.Wrap(err, "failed to compute timestamp spacing deviation")
	}

	return RateInfo{
		Rate:  1.0 / dt,
		DT:    dt,
		DTMin: dtMin,
		DTMax: dtMax,
		DTStd: dtStd,
	}, nil
}
