package slider

import (
	"math"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/slider.go/pkg/motor"
	"github.com/robotalks/slider.go/pkg/wire"
)

// Command parameters.
const (
	ParamSteps = "STEPS"
	ParamSpeed = "SPEED"
)

type handlerFunc func(*Controller, wire.Command) wire.Response

var handlers = map[string]handlerFunc{
	"PING":   (*Controller).ping,
	"STATUS": (*Controller).status,
	"GETPOS": (*Controller).getPos,
	"MOVE":   (*Controller).move,
	"STOP":   (*Controller).stop,
	"HOME":   (*Controller).home,
}

// Controller owns the axis state and drives the motor.
type Controller struct {
	Config Config

	driver motor.Driver

	lock   sync.Mutex
	axis   Axis
	handle motor.Handle
}

// New creates a Controller in idle, unhomed state at position 0.
func New(driver motor.Driver) *Controller {
	return &Controller{Config: defaultConfig, driver: driver}
}

// Exec handles one framed command line and returns the response line
// without terminator. A blank line has no response.
func (c *Controller) Exec(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}
	resp := c.Handle(wire.Parse(line)).String()
	glog.V(2).Infof("%q -> %q", line, resp)
	return resp
}

// Handle handles one command.
func (c *Controller) Handle(cmd wire.Command) wire.Response {
	handler, ok := handlers[cmd.Verb]
	if !ok {
		return wire.Fail(wire.ErrUnknownCommand)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.reconcile()
	return handler(c, cmd)
}

// Poll reconciles the axis with the motor and returns the current state.
func (c *Controller) Poll() Axis {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.reconcile()
	return c.axis.clone()
}

// Snapshot returns the axis state without touching the motor.
func (c *Controller) Snapshot() Axis {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.axis.clone()
}

func (c *Controller) reconcile() {
	if !c.axis.State.Busy() {
		return
	}
	st := c.driver.Poll(c.handle)
	c.axis.Position = st.Position
	switch st.Progress {
	case motor.InProgress:
		return
	case motor.Done:
		if c.axis.State == StateHoming {
			c.axis.Homed = true
			glog.Info("homed")
		}
		c.axis.State = StateIdle
	case motor.Faulted:
		fault := st.Fault
		if fault == nil {
			fault = &motor.Fault{Code: wire.ErrMoveFailed.Code, Reason: wire.ErrMoveFailed.Reason}
		}
		glog.Warningf("%s faulted at %d: %v", c.axis.State, st.Position, fault)
		c.axis.State = StateError
		c.axis.Homed = false
		c.axis.Fault = fault
	}
	c.axis.Target = nil
	c.handle = 0
}

func (c *Controller) ping(wire.Command) wire.Response {
	return wire.OK()
}

func (c *Controller) status(wire.Command) wire.Response {
	return wire.OK(
		wire.Str("STATE", c.axis.State.String()),
		wire.Int("POS", c.axis.Position),
		wire.Bool("HOMED", c.axis.Homed),
	)
}

func (c *Controller) getPos(wire.Command) wire.Response {
	return wire.OK(wire.Int("POS", c.axis.Position))
}

func (c *Controller) move(cmd wire.Command) wire.Response {
	steps := cmd.Param(ParamSteps)
	if steps.IsMissing() {
		return wire.Fail(wire.ErrMissingSteps)
	}
	if !steps.IsValid() || steps.Value == 0 {
		return wire.Fail(wire.ErrInvalidSteps)
	}
	target := int64(c.axis.Position) + int64(steps.Value)
	if target < math.MinInt32 || target > math.MaxInt32 {
		return wire.Fail(wire.ErrInvalidSteps)
	}
	speed := uint32(c.Config.DefaultSpeed)
	if p := cmd.Param(ParamSpeed); !p.IsMissing() {
		if !p.IsValid() || p.Value <= 0 {
			return wire.Fail(wire.ErrInvalidSpeed)
		}
		speed = uint32(p.Value)
	}

	switch c.axis.State {
	case StateMoving, StateHoming:
		return wire.Fail(wire.ErrBusy)
	case StateError:
		return wire.Fail(&wire.Error{Code: c.axis.Fault.Code, Reason: c.axis.Fault.Reason})
	}

	distance := int64(steps.Value)
	if distance < 0 {
		distance = -distance
	}
	h, err := c.driver.BeginMove(motor.DirectionOf(steps.Value), uint32(distance), speed)
	if err != nil {
		glog.Errorf("move %d at %d: %v", steps.Value, speed, err)
		return wire.Fail(wire.ErrMoveFailed)
	}
	c.handle = h
	c.axis.State = StateMoving
	c.axis.Target = &Target{Position: int32(target), Speed: speed}
	glog.V(1).Infof("moving %d -> %d at %d", c.axis.Position, target, speed)
	return wire.OK()
}

func (c *Controller) stop(wire.Command) wire.Response {
	switch c.axis.State {
	case StateMoving, StateHoming:
		c.axis.Position = c.driver.Stop()
		glog.V(1).Infof("%s stopped at %d", c.axis.State, c.axis.Position)
		c.axis.Target = nil
		c.handle = 0
	case StateError:
		glog.Infof("fault %v cleared", c.axis.Fault)
		c.axis.Fault = nil
	}
	c.axis.State = StateIdle
	return wire.OK(wire.Int("POS", c.axis.Position))
}

func (c *Controller) home(wire.Command) wire.Response {
	if c.axis.State.Busy() {
		return wire.Fail(wire.ErrBusy)
	}
	h, err := c.driver.BeginHome()
	if err != nil {
		glog.Errorf("home: %v", err)
		return wire.Fail(wire.ErrHomeFailed)
	}
	c.handle = h
	c.axis.State = StateHoming
	c.axis.Homed = false
	c.axis.Target = nil
	c.axis.Fault = nil
	glog.V(1).Infof("homing from %d", c.axis.Position)
	return wire.OK()
}
