package app

import (
	"math"

	"github.com/google/uuid"

	"todsim/domain/timestream"
	"todsim/domain/timing"
	"todsim/internal"
	"todsim/internal/errors"
	"todsim/ports"
)

// Oversampling suppresses periodic-boundary artifacts in the cropped window;
// the factor is fixed for all requests so counters stay aligned across runs.
const oversample = 2

// SimNoiseConfig configures the noise operator.
type SimNoiseConfig struct {
	// Realization is the Monte Carlo realization index (>= 0).
	Realization int

	// Component is the noise component index used in keystream keying (>= 0).
	Component int

	// NoiseModelKey is the observation key containing the noise model.
	// Defaults to "noise_model".
	NoiseModelKey string

	// TimesKey is the observation shared key for timestamps. Defaults to
	// "times".
	TimesKey string

	// OutKey is the observation detdata key for the output noise
	// timestreams. Defaults to "noise".
	OutKey string
}

// SimNoise generates noise timestreams for every observation it is handed.
// Each process generates data for its own detectors and samples; the
// counter-based keystream keying makes the result independent of how the
// work is distributed.
type SimNoise struct {
	cfg   SimNoiseConfig
	synth *Synthesizer
	plans ports.PlanStorePort
	log   *internal.Logger
	runID string
}

// NewSimNoise creates a noise operator. The plan store must be the one the
// synthesizer draws plans from; the operator clears it between observations.
func NewSimNoise(cfg SimNoiseConfig, synth *Synthesizer, plans ports.PlanStorePort, logger *internal.Logger) (*SimNoise, error) {
	if cfg.Realization < 0 {
		return nil, errors.ConfigInvalidf("realization index must be non-negative, got %d", cfg.Realization)
	}
	if cfg.Component < 0 {
		return nil, errors.ConfigInvalidf("component index must be non-negative, got %d", cfg.Component)
	}
	if cfg.NoiseModelKey == "" {
		cfg.NoiseModelKey = "noise_model"
	}
	if cfg.TimesKey == "" {
		cfg.TimesKey = "times"
	}
	if cfg.OutKey == "" {
		cfg.OutKey = "noise"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SimNoise{
		cfg:   cfg,
		synth: synth,
		plans: plans,
		log:   logger.Named("sim_noise"),
		runID: uuid.NewString(),
	}, nil
}

// RunID returns the unique identifier of this operator instance, used for
// log and report provenance.
func (op *SimNoise) RunID() string {
	return op.runID
}

// Exec applies noise to every observation, restricted to the requested
// detector selection when it is non-nil. Processing stops at the first
// failed observation.
func (op *SimNoise) Exec(observations []ports.ObservationPort, detectors []string) error {
	for _, ob := range observations {
		if err := op.execObservation(ob, detectors); err != nil {
			return errors.Wrapf(err, "noise simulation failed for observation %d", ob.UID())
		}
	}
	return nil
}

func (op *SimNoise) execObservation(ob ports.ObservationPort, detectors []string) error {
	dets := ob.LocalDetectors(detectors)
	if len(dets) == 0 {
		// Nothing to do for this observation
		return nil
	}

	obsUID := ob.UID()
	telescope := ob.TelescopeID()
	globalOffset := ob.GlobalOffset()

	model, ok := ob.NoiseModel(op.cfg.NoiseModelKey)
	if !ok {
		msg := errors.MissingKeyf(
			"observation %d does not contain noise model key %q", obsUID, op.cfg.NoiseModelKey)
		op.log.Error("%s", msg.Message)
		return msg
	}

	// Long noise correlations require whole sample ranges on one process.
	if ob.SampleRanks() != 1 {
		msg := errors.NotImplemented(
			"noise simulation for process grids with multiple ranks in the sample direction is not implemented")
		op.log.Error("%s", msg.Message)
		return msg
	}

	info, err := timing.RateFromTimes(ob.SharedTimes(op.cfg.TimesKey))
	if err != nil {
		return errors.Wrapf(err, "observation %d has unusable timestamps under key %q", obsUID, op.cfg.TimesKey)
	}

	ob.EnsureDetData(op.cfg.OutKey, ob.LocalSamples())

	for _, key := range model.Keys() {
		// Skip components no active detector couples to.
		total := 0.0
		for _, det := range dets {
			total += math.Abs(model.Weight(det, key))
		}
		if total == 0 {
			continue
		}

		req := timestream.Request{
			Realization: uint64(op.cfg.Realization),
			Telescope:   telescope,
			Component:   uint64(op.cfg.Component),
			ObsUID:      obsUID,
			DetIndex:    model.Index(key),
			Rate:        info.Rate,
			FirstSample: ob.LocalSampleOffset() + globalOffset,
			Samples:     ob.LocalSamples(),
			Oversample:  oversample,
			Freq:        model.Freq(key),
			PSD:         model.PSD(key),
		}

		tdata, err := op.synth.Synthesize(req)
		if err != nil {
			return errors.Wrapf(err, "failed to synthesize component %q", key)
		}

		for _, det := range dets {
			weight := model.Weight(det, key)
			if weight == 0 {
				continue
			}
			ob.AccumulateDetData(op.cfg.OutKey, det, weight, tdata)
		}

		op.log.Debug("run %s: observation %d component %q synthesized at %.3f Hz for %d detectors",
			op.runID, obsUID, key, info.Rate, len(dets))
	}

	// Release transform workspaces before the next observation; lengths
	// usually differ between observations and the plans are cheap to rebuild
	// relative to their memory.
	op.plans.Clear()
	return nil
}

// Requires declares the observation data this operator consumes, grouped
// the way the surrounding pipeline tracks dependencies.
func (op *SimNoise) Requires() map[string][]string {
	return map[string][]string{
		"meta":   {op.cfg.NoiseModelKey},
		"shared": {op.cfg.TimesKey},
	}
}

// Provides declares the observation data this operator creates.
func (op *SimNoise) Provides() map[string][]string {
	return map[string][]string{
		"detdata": {op.cfg.OutKey},
	}
}
