package config

import (
	"os"
	"strconv"

	"todsim/internal/errors"
)

// Config represents the complete simulation configuration
type Config struct {
	Sim      SimConfig
	Scenario ScenarioConfig
	Output   OutputConfig
}

// SimConfig holds the noise-operator settings
type SimConfig struct {
	Realization   int    // first Monte Carlo realization index
	Realizations  int    // number of realizations to run
	Component     int    // noise component index for keystream keying
	NoiseModelKey string // observation key containing the noise model
	TimesKey      string // observation shared key for timestamps
	OutKey        string // observation detdata key for output timestreams
}

// ScenarioConfig holds the synthetic focal-plane settings used by the driver
type ScenarioConfig struct {
	Observations int
	Detectors    int
	Samples      int
	SampleRate   float64
}

// OutputConfig holds report output settings
type OutputConfig struct {
	ReportPath string // xlsx report path, empty disables the report
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sim: SimConfig{
			Realization:   getEnvIntOrDefault("SIM_REALIZATION", 0),
			Realizations:  getEnvIntOrDefault("SIM_REALIZATIONS", 1),
			Component:     getEnvIntOrDefault("SIM_COMPONENT", 0),
			NoiseModelKey: getEnvOrDefault("SIM_NOISE_MODEL_KEY", "noise_model"),
			TimesKey:      getEnvOrDefault("SIM_TIMES_KEY", "times"),
			OutKey:        getEnvOrDefault("SIM_OUT_KEY", "noise"),
		},
		Scenario: ScenarioConfig{
			Observations: getEnvIntOrDefault("SCENARIO_OBSERVATIONS", 1),
			Detectors:    getEnvIntOrDefault("SCENARIO_DETECTORS", 4),
			Samples:      getEnvIntOrDefault("SCENARIO_SAMPLES", 4096),
			SampleRate:   getEnvFloatOrDefault("SCENARIO_RATE", 100.0),
		},
		Output: OutputConfig{
			ReportPath: getEnvOrDefault("REPORT_PATH", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sim.Realization < 0 {
		return errors.ConfigInvalid("SIM_REALIZATION must be non-negative")
	}
	if config.Sim.Realizations < 1 {
		return errors.ConfigInvalid("SIM_REALIZATIONS must be at least 1")
	}
	if config.Sim.Component < 0 {
		return errors.ConfigInvalid("SIM_COMPONENT must be non-negative")
	}
	if config.Sim.NoiseModelKey == "" {
		return errors.ConfigInvalid("SIM_NOISE_MODEL_KEY must not be empty")
	}
	if config.Sim.TimesKey == "" {
		return errors.ConfigInvalid("SIM_TIMES_KEY must not be empty")
	}
	if config.Sim.OutKey == "" {
		return errors.ConfigInvalid("SIM_OUT_KEY must not be empty")
	}
	if config.Scenario.Observations < 1 {
		return errors.ConfigInvalid("SCENARIO_OBSERVATIONS must be at least 1")
	}
	if config.Scenario.Detectors < 1 {
		return errors.ConfigInvalid("SCENARIO_DETECTORS must be at least 1")
	}
	if config.Scenario.Samples < 1 {
		return errors.ConfigInvalid("SCENARIO_SAMPLES must be at least 1")
	}
	if config.Scenario.SampleRate <= 0 {
		return errors.ConfigInvalid("SCENARIO_RATE must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
