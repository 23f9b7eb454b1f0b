package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"todsim/adapters/export"
	"todsim/adapters/fft"
	"todsim/adapters/rng"
	"todsim/app"
	"todsim/internal"
	"todsim/internal/config"
	"todsim/internal/testkit"
	"todsim/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	runID := uuid.NewString()
	logger.Info("run %s: %d realization(s), %d observation(s), %d detector(s), %d samples at %.1f Hz",
		runID, cfg.Sim.Realizations, cfg.Scenario.Observations,
		cfg.Scenario.Detectors, cfg.Scenario.Samples, cfg.Scenario.SampleRate)

	// One plan store and operator per realization: the store is the only
	// shared mutable state, so each goroutine owns its own.
	results := make([][]export.DetectorSummary, cfg.Sim.Realizations)
	var g errgroup.Group
	for i := 0; i < cfg.Sim.Realizations; i++ {
		i := i
		g.Go(func() error {
			rows, err := runRealization(cfg, logger, cfg.Sim.Realization+i)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	report := export.RunReport{RunID: runID}
	for _, rows := range results {
		report.Rows = append(report.Rows, rows...)
	}

	if cfg.Output.ReportPath != "" {
		if err := export.NewWriter(cfg.Output.ReportPath).Write(report); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		logger.Info("run %s: report written to %s", runID, cfg.Output.ReportPath)
	}

	for _, row := range report.Rows {
		fmt.Printf("realization %d obs %d det %-10s n=%d mean=%+.4e std=%.4e\n",
			row.Realization, row.Observation, row.Detector, row.Samples, row.Mean, row.StdDev)
	}
}

// runRealization synthesizes noise for one Monte Carlo realization and
// returns per-detector summaries.
func runRealization(cfg *config.Config, logger *internal.Logger, realization int) ([]export.DetectorSummary, error) {
	store := fft.NewStore()
	synth := app.NewSynthesizer(rng.NewThreefry(), store)
	op, err := app.NewSimNoise(app.SimNoiseConfig{
		Realization:   realization,
		Component:     cfg.Sim.Component,
		NoiseModelKey: cfg.Sim.NoiseModelKey,
		TimesKey:      cfg.Sim.TimesKey,
		OutKey:        cfg.Sim.OutKey,
	}, synth, store, logger)
	if err != nil {
		return nil, err
	}

	observations := buildObservations(cfg)
	if err := op.Exec(observations, nil); err != nil {
		return nil, err
	}

	var rows []export.DetectorSummary
	for _, ob := range observations {
		mem := ob.(*testkit.MemObservation)
		for _, det := range mem.Detectors {
			row, err := export.Summarize(realization, mem.ID, det, mem.DetData[cfg.Sim.OutKey][det])
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// buildObservations assembles a synthetic focal plane: one 1/f component per
// detector plus a weakly-coupled common mode shared by all detectors.
func buildObservations(cfg *config.Config) []ports.ObservationPort {
	const telescope = 1

	observations := make([]ports.ObservationPort, cfg.Scenario.Observations)
	for o := range observations {
		model := testkit.NewMemNoiseModel()
		dets := make([]string, cfg.Scenario.Detectors)
		for d := range dets {
			dets[d] = fmt.Sprintf("det_%03d", d)
			freq, psd := testkit.AnalyticPSD(cfg.Scenario.SampleRate, 1.0, 0.1, -1.0, 1e-5, 64)
			model.AddComponent(dets[d], uint64(d), freq, psd)
			model.SetWeight(dets[d], dets[d], 1.0)
		}
		freq, psd := testkit.AnalyticPSD(cfg.Scenario.SampleRate, 0.5, 1.0, -1.5, 1e-5, 64)
		model.AddComponent("common_mode", uint64(1000+o), freq, psd)
		for _, det := range dets {
			model.SetWeight(det, "common_mode", 0.25)
		}

		ob := testkit.NewMemObservation(uint64(o+1), telescope, dets,
			cfg.Scenario.SampleRate, cfg.Scenario.Samples)
		ob.SetModel(cfg.Sim.NoiseModelKey, model)
		if cfg.Sim.TimesKey != "times" {
			ob.Shared[cfg.Sim.TimesKey] = ob.Shared["times"]
		}
		observations[o] = ob
	}
	return observations
}
