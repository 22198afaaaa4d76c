package sim

import (
	"flag"

	"github.com/benbjohnson/clock"
)

// Config defines the simulated axis.
type Config struct {
	// StartSpeed is the speed (steps/s) motion starts and ends at.
	StartSpeed float64
	// MaxSpeed caps requested speeds (steps/s).
	MaxSpeed float64
	// Accel is the acceleration (steps/s^2).
	Accel float64
	// HomeSpeed is the speed (steps/s) used for homing.
	HomeSpeed float64
	// HomeTravel is the maximum distance searched for the endstop.
	HomeTravel uint
	// RailLength is the usable travel in steps, 0 means unlimited.
	RailLength int
	// StartOffset is the carriage distance from the endstop at power-up.
	StartOffset int
	// NoEndstop simulates a broken endstop switch.
	NoEndstop bool
}

// Defaults
const (
	DefaultStartSpeed  float64 = 50
	DefaultMaxSpeed    float64 = 5000
	DefaultAccel       float64 = 600
	DefaultHomeSpeed   float64 = 500
	DefaultHomeTravel  uint    = 100000
	DefaultRailLength  int     = 40000
	DefaultStartOffset int     = 2000
)

var defaultConfig = Config{
	StartSpeed:  DefaultStartSpeed,
	MaxSpeed:    DefaultMaxSpeed,
	Accel:       DefaultAccel,
	HomeSpeed:   DefaultHomeSpeed,
	HomeTravel:  DefaultHomeTravel,
	RailLength:  DefaultRailLength,
	StartOffset: DefaultStartOffset,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.MaxSpeed, "sim-max-speed", defaultConfig.MaxSpeed, "Maximum stepper speed (steps/s).")
	flag.Float64Var(&defaultConfig.Accel, "sim-accel", defaultConfig.Accel, "Stepper acceleration (steps/s^2).")
	flag.Float64Var(&defaultConfig.HomeSpeed, "sim-home-speed", defaultConfig.HomeSpeed, "Homing speed (steps/s).")
	flag.UintVar(&defaultConfig.HomeTravel, "sim-home-travel", defaultConfig.HomeTravel, "Maximum travel (steps) searching the endstop.")
	flag.IntVar(&defaultConfig.RailLength, "sim-rail", defaultConfig.RailLength, "Rail length (steps), 0 means unlimited.")
	flag.IntVar(&defaultConfig.StartOffset, "sim-start", defaultConfig.StartOffset, "Carriage distance (steps) from the endstop at power-up.")
	flag.BoolVar(&defaultConfig.NoEndstop, "sim-no-endstop", defaultConfig.NoEndstop, "Simulate a missing endstop.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewStepper creates a Stepper using the config.
func (c *Config) NewStepper(clk clock.Clock) *Stepper {
	s := NewStepper(clk)
	s.Config = *c
	s.physical = int32(c.StartOffset)
	s.origin = s.physical
	return s
}
