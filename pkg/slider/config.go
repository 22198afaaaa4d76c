package slider

import (
	"flag"

	"github.com/robotalks/slider.go/pkg/motor"
)

// DefaultSpeed is the MOVE speed (steps/s) when SPEED is omitted.
const DefaultSpeed uint = 500

// Config defines the controller behavior.
type Config struct {
	DefaultSpeed uint
}

var defaultConfig = Config{
	DefaultSpeed: DefaultSpeed,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.UintVar(&defaultConfig.DefaultSpeed, "default-speed", defaultConfig.DefaultSpeed, "MOVE speed (steps/s) when SPEED is omitted.")
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

// NewController creates a Controller using the config.
func (c *Config) NewController(driver motor.Driver) *Controller {
	ctl := New(driver)
	ctl.Config = *c
	return ctl
}
