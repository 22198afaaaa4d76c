package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	"github.com/robotalks/slider.go/pkg/comm/mqtt"
	"github.com/robotalks/slider.go/pkg/console"
	"github.com/robotalks/slider.go/pkg/env"
	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
	"github.com/robotalks/slider.go/pkg/link/uart"
	"github.com/robotalks/slider.go/pkg/link/websocket"
	"github.com/robotalks/slider.go/pkg/motor/sim"
	"github.com/robotalks/slider.go/pkg/slider"
)

var (
	useStdio   bool
	useConsole bool
	listenAddr string
	interval   = framework.DefaultInterval
)

func init() {
	flag.BoolVar(&useStdio, "stdio", useStdio, "Serve the line protocol on stdin/stdout.")
	flag.BoolVar(&useConsole, "console", useConsole, "Run the interactive console.")
	flag.StringVar(&listenAddr, "listen", listenAddr, "Serve websocket line sessions on this address, e.g. :8080.")
	flag.DurationVar(&interval, "interval", interval, "Control loop period.")
	env.SetupFlags()
	sim.SetupFlags()
	slider.SetupFlags()
	uart.SetupFlags()
	mqtt.SetupFlags()
}

func main() {
	flag.Parse()

	id := env.DeviceID()
	clk := clock.New()
	ctl := slider.Default().NewController(sim.Default().NewStepper(clk))
	svc := slider.NewService(ctl)

	loop := framework.NewLoop()
	loop.Interval = interval
	loop.Clock = clk
	loop.Add(svc)

	if conf := uart.Default(); conf.Enabled() {
		loop.AddRunnable(conf.NewLink())
	}
	if useStdio {
		loop.AddRunnable(framework.NamedRun("stdio", link.Stdio()))
	}
	if listenAddr != "" {
		loop.AddRunnable(websocket.NewServer(listenAddr))
	}
	if conf := mqtt.Default(); conf.Enabled() {
		bridge, err := conf.NewBridge(id)
		if err != nil {
			glog.Exitf("mqtt: %v", err)
		}
		svc.Watch(bridge.Watch)
		loop.AddRunnable(bridge)
	}
	if useConsole {
		loop.AddRunnable(console.New())
	}

	glog.Infof("slider %s started", id)
	loop.RunOrFail()
}
