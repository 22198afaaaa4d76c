// Package sim simulates a stepper driven carriage on a rail with an
// endstop at one end.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	"github.com/robotalks/slider.go/pkg/motor"
)

// Stepper implements motor.Driver. Motion is estimated from elapsed time
// so the carriage moves without anyone ticking it.
type Stepper struct {
	Config Config
	Clock  clock.Clock

	lock     sync.Mutex
	physical int32 // carriage position from the endstop, when no motion
	origin   int32 // physical position of logical 0
	seq      motor.Handle
	motion   *motion
	last     motor.Handle
	result   motor.Status
}

type motion struct {
	handle    motor.Handle
	startTime time.Time
	from      int32
	sign      int32
	prof      profile
	stopDist  float64
	endAfter  time.Duration
	fault     *motor.Fault
	homing    bool
}

// NewStepper creates a Stepper with default config.
func NewStepper(clk clock.Clock) *Stepper {
	if clk == nil {
		clk = clock.New()
	}
	s := &Stepper{Config: defaultConfig, Clock: clk}
	s.physical = int32(s.Config.StartOffset)
	s.origin = s.physical
	return s
}

// BeginMove implements motor.Driver.
func (s *Stepper) BeginMove(dir motor.Direction, distance uint32, speed uint32) (motor.Handle, error) {
	if distance == 0 {
		return 0, motor.ErrZeroDistance
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if s.motion != nil {
		return 0, motor.ErrRunning
	}
	m := s.newMotion(now, dir.Sign(), float64(distance), s.clampSpeed(float64(speed)))
	m.stopDist = m.prof.distance
	if limit, ok := s.distanceToLimit(m.sign); ok && limit < m.stopDist {
		m.stopDist, m.fault = limit, motor.FaultLimitReached
	}
	m.endAfter = m.prof.timeAt(m.stopDist)
	s.motion = m
	glog.V(3).Infof("sim: move %d steps from %d at %.0f steps/s, %v",
		int32(distance)*m.sign, s.physical-s.origin, m.prof.peakSpeed, m.endAfter)
	return m.handle, nil
}

// BeginHome implements motor.Driver.
func (s *Stepper) BeginHome() (motor.Handle, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if s.motion != nil {
		return 0, motor.ErrRunning
	}
	travel := float64(s.Config.HomeTravel)
	m := s.newMotion(now, -1, travel, s.clampSpeed(s.Config.HomeSpeed))
	m.homing = true
	toEndstop := math.Max(float64(s.physical), 0)
	switch {
	case !s.Config.NoEndstop && toEndstop <= travel:
		m.stopDist = toEndstop
		m.endAfter = m.prof.timeAt(toEndstop)
	default:
		// keeps stepping for the whole travel, the carriage stalls at the
		// hard stop if there is one.
		m.stopDist = travel
		if s.Config.RailLength > 0 {
			m.stopDist = math.Min(travel, toEndstop)
		}
		m.endAfter = m.prof.duration()
		m.fault = motor.FaultEndstopNotFound
	}
	s.motion = m
	glog.V(3).Infof("sim: homing from %d, %v", s.physical-s.origin, m.endAfter)
	return m.handle, nil
}

// Stop implements motor.Driver.
func (s *Stepper) Stop() int32 {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if m := s.motion; m != nil {
		s.physical = m.positionAt(now)
		s.motion = nil
		s.last = m.handle
		s.result = motor.Status{Progress: motor.Done, Position: s.physical - s.origin}
	}
	return s.physical - s.origin
}

// Poll implements motor.Driver.
func (s *Stepper) Poll(h motor.Handle) motor.Status {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if m := s.motion; m != nil && m.handle == h {
		return motor.Status{Progress: motor.InProgress, Position: m.positionAt(now) - s.origin}
	}
	if h != 0 && h == s.last {
		return s.result
	}
	return motor.Status{Progress: motor.Done, Position: s.physical - s.origin}
}

// Position returns the current logical position.
func (s *Stepper) Position() int32 {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if m := s.motion; m != nil {
		return m.positionAt(now) - s.origin
	}
	return s.physical - s.origin
}

// Physical returns the carriage distance from the endstop.
func (s *Stepper) Physical() int32 {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.Clock.Now()
	s.settle(now)
	if m := s.motion; m != nil {
		return m.positionAt(now)
	}
	return s.physical
}

func (s *Stepper) newMotion(now time.Time, sign int32, distance, speed float64) *motion {
	s.seq++
	if s.seq == 0 {
		s.seq++
	}
	return &motion{
		handle:    s.seq,
		startTime: now,
		from:      s.physical,
		sign:      sign,
		prof:      newProfile(distance, speed, s.Config.StartSpeed, s.Config.Accel),
	}
}

func (s *Stepper) clampSpeed(speed float64) float64 {
	if speed < s.Config.StartSpeed {
		speed = s.Config.StartSpeed
	}
	if s.Config.MaxSpeed > 0 && speed > s.Config.MaxSpeed {
		speed = s.Config.MaxSpeed
	}
	return speed
}

func (s *Stepper) distanceToLimit(sign int32) (float64, bool) {
	if s.Config.RailLength <= 0 {
		return 0, false
	}
	if sign < 0 {
		return math.Max(float64(s.physical), 0), true
	}
	return math.Max(float64(int32(s.Config.RailLength)-s.physical), 0), true
}

// settle completes the current motion if it has ended by now.
func (s *Stepper) settle(now time.Time) {
	m := s.motion
	if m == nil || now.Sub(m.startTime) < m.endAfter {
		return
	}
	s.physical = m.from + m.sign*int32(m.stopDist)
	s.motion = nil
	s.last = m.handle
	if m.fault != nil {
		glog.V(3).Infof("sim: motion %d faulted: %v", m.handle, m.fault)
		s.result = motor.Status{Progress: motor.Faulted, Position: s.physical - s.origin, Fault: m.fault}
		return
	}
	if m.homing {
		s.origin = s.physical
	}
	s.result = motor.Status{Progress: motor.Done, Position: s.physical - s.origin}
}

func (m *motion) positionAt(now time.Time) int32 {
	dist := math.Min(m.prof.travelled(now.Sub(m.startTime)), m.stopDist)
	return m.from + m.sign*int32(math.Floor(dist))
}
