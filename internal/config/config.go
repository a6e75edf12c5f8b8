// Package config holds the tunable constants of the trajectory core
// (§6 of the specification), loaded the way the teacher's config.go
// loads smdConfig(): a lazily-initialized package singleton, defaults
// set in code, optionally overridden by a TOML file whose path comes
// from an environment variable.
package config

import (
	"os"
	"sync"

	"github.com/spf13/viper"
)

// EnvVar is the environment variable that points at an optional TOML
// override file, playing the role of the teacher's SMD_CONFIG.
const EnvVar = "TRANSFER_WINDOW_CONFIG"

// Config holds every tunable named in §6.
type Config struct {
	InterceptGapSeconds     float64
	WarpStopBeforeTarget    float64
	WarpSlowDownAfterFrac   float64
	WarpAdditionalMultipler float64
	TimeStepLevels          []float64
	DockingDistanceMeters   float64
	DockingSpeedMetersPerS  float64
	ProportionalNavGain     float64
	LOSRateDeltaSeconds     float64
	FuelDensityKgPerLitre   float64
	StandardGravity         float64
	ITPTolerance            float64
	KeplerTolerance         float64
	MinDvToCreateBurn       float64
	MinFuelToCreateTurn     float64
	MinDvToEnableGuidance   float64
	TimeBeforeTorpedoBurn   float64
}

var (
	mu       sync.Mutex
	loaded   bool
	instance Config
)

func defaults() Config {
	return Config{
		InterceptGapSeconds:     1.0,
		WarpStopBeforeTarget:    5.0,
		WarpSlowDownAfterFrac:   0.95,
		WarpAdditionalMultipler: 0.06,
		TimeStepLevels: []float64{
			1, 5, 15, 60, 300, 900, 3600, 21600, 86400, 432000, 2160000, 8640000, 31536000,
		},
		DockingDistanceMeters:   100,
		DockingSpeedMetersPerS:  10,
		ProportionalNavGain:     3.0,
		LOSRateDeltaSeconds:     0.1,
		FuelDensityKgPerLitre:   1.0,
		StandardGravity:         9.80665,
		ITPTolerance:            1e-6,
		KeplerTolerance:         1e-10,
		MinDvToCreateBurn:       1.0,
		MinFuelToCreateTurn:     1.0,
		MinDvToEnableGuidance:   1.0,
		TimeBeforeTorpedoBurn:   0.1,
	}
}

// Get returns the process-wide configuration, loading it on first call.
func Get() Config {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return instance
	}
	instance = load()
	loaded = true
	return instance
}

func load() Config {
	cfg := defaults()

	path := os.Getenv(EnvVar)
	if path == "" {
		return cfg
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		// Persistence/config failures degrade gracefully per the error
		// handling design: keep the defaults rather than fail the run.
		return cfg
	}

	if v.IsSet("intercept_gap_seconds") {
		cfg.InterceptGapSeconds = v.GetFloat64("intercept_gap_seconds")
	}
	if v.IsSet("warp_stop_before_target") {
		cfg.WarpStopBeforeTarget = v.GetFloat64("warp_stop_before_target")
	}
	if v.IsSet("docking_distance_meters") {
		cfg.DockingDistanceMeters = v.GetFloat64("docking_distance_meters")
	}
	if v.IsSet("docking_speed_meters_per_s") {
		cfg.DockingSpeedMetersPerS = v.GetFloat64("docking_speed_meters_per_s")
	}
	if v.IsSet("proportional_nav_gain") {
		cfg.ProportionalNavGain = v.GetFloat64("proportional_nav_gain")
	}
	if v.IsSet("time_step_levels") {
		levels := v.GetFloat64Slice("time_step_levels")
		if len(levels) > 0 {
			cfg.TimeStepLevels = levels
		}
	}
	return cfg
}

// reset is a test-only hook to force the next Get() to reload.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = false
}
