package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todsim/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Sim.Realization)
	assert.Equal(t, 1, cfg.Sim.Realizations)
	assert.Equal(t, 0, cfg.Sim.Component)
	assert.Equal(t, "noise_model", cfg.Sim.NoiseModelKey)
	assert.Equal(t, "times", cfg.Sim.TimesKey)
	assert.Equal(t, "noise", cfg.Sim.OutKey)
	assert.Equal(t, 4096, cfg.Scenario.Samples)
	assert.Equal(t, 100.0, cfg.Scenario.SampleRate)
	assert.Empty(t, cfg.Output.ReportPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SIM_REALIZATION", "3")
	t.Setenv("SIM_REALIZATIONS", "8")
	t.Setenv("SIM_COMPONENT", "2")
	t.Setenv("SIM_OUT_KEY", "sim_noise")
	t.Setenv("SCENARIO_SAMPLES", "1024")
	t.Setenv("SCENARIO_RATE", "37.5")
	t.Setenv("REPORT_PATH", "/tmp/report.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Sim.Realization)
	assert.Equal(t, 8, cfg.Sim.Realizations)
	assert.Equal(t, 2, cfg.Sim.Component)
	assert.Equal(t, "sim_noise", cfg.Sim.OutKey)
	assert.Equal(t, 1024, cfg.Scenario.Samples)
	assert.Equal(t, 37.5, cfg.Scenario.SampleRate)
	assert.Equal(t, "/tmp/report.xlsx", cfg.Output.ReportPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"SIM_REALIZATION", "-1"},
		{"SIM_REALIZATIONS", "0"},
		{"SIM_COMPONENT", "-2"},
		{"SCENARIO_SAMPLES", "0"},
		{"SCENARIO_RATE", "-5"},
		{"SCENARIO_DETECTORS", "0"},
		{"SCENARIO_OBSERVATIONS", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeConfigInvalid),
				"expected CONFIG_INVALID, got %q", errors.GetCode(err))
		})
	}
}
