// Package uart serves the line protocol on a serial port.
package uart

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
)

// DefaultBaud is the default UART baud rate.
const DefaultBaud = 115200

// Config defines the serial port.
type Config struct {
	Port string
	Baud int
}

var defaultConfig = Config{Baud: DefaultBaud}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port device, e.g. /dev/ttyUSB0.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial port baud rate.")
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

// Enabled indicates a port is configured.
func (c *Config) Enabled() bool {
	return c.Port != ""
}

// serialConfig uses blocking reads: the port is closed to stop reading.
func (c *Config) serialConfig() *serial.Config {
	return &serial.Config{
		Name:     c.Port,
		Baud:     c.Baud,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	}
}

// NewLink creates a Link on the configured port.
func (c *Config) NewLink() *Link {
	return &Link{Config: *c}
}

// Link is a framework.Runnable serving one session on the serial port
// and posting command lines to the loop.
type Link struct {
	Config Config
}

// Name implements framework.Named.
func (l *Link) Name() string {
	return "uart:" + l.Config.Port
}

// Run implements framework.Runnable.
func (l *Link) Run(ctx context.Context) error {
	port, err := serial.OpenPort(l.Config.serialConfig())
	if err != nil {
		return fmt.Errorf("open %s: %w", l.Config.Port, err)
	}
	glog.Infof("serial %s opened at %d baud", l.Config.Port, l.Config.Baud)
	session := link.NewSession(l.Config.Port, port)
	return framework.RunWithContextCloser(ctx, port, func() error {
		return session.Run(ctx)
	})
}

func init() {
	if port := os.Getenv("SLIDER_PORT"); port != "" {
		defaultConfig.Port = port
	}
}
