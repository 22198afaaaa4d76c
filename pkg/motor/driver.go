// Package motor defines the capability the slider needs from a motor.
package motor

import (
	"errors"
	"fmt"
)

// Direction of a move.
type Direction int

// Directions
const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Sign returns +1 or -1.
func (d Direction) Sign() int32 {
	if d == Reverse {
		return -1
	}
	return 1
}

// DirectionOf returns the direction of a signed step count.
func DirectionOf(steps int32) Direction {
	if steps < 0 {
		return Reverse
	}
	return Forward
}

// Handle identifies one motion started on a Driver.
type Handle uint32

// Progress is the coarse state of a motion.
type Progress int

// Progress values.
const (
	InProgress Progress = iota
	Done
	Faulted
)

// Fault is a hardware condition terminating a motion.
type Fault struct {
	Code   int
	Reason string
}

// Error implements error.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d %s", f.Code, f.Reason)
}

// Faults reported by drivers.
var (
	// FaultEndstopNotFound means homing ran out of travel.
	FaultEndstopNotFound = &Fault{Code: 10, Reason: "ENDSTOP_NOT_FOUND"}
	// FaultLimitReached means the carriage hit the end of the rail.
	FaultLimitReached = &Fault{Code: 20, Reason: "LIMIT_REACHED"}
)

// Status is the result of polling a motion.
type Status struct {
	Progress Progress
	// Position is the current position while InProgress, the final
	// position once Done or Faulted.
	Position int32
	// Fault is set when Progress is Faulted.
	Fault *Fault
}

var (
	// ErrRunning indicates a motion is already in progress.
	ErrRunning = errors.New("motion in progress")
	// ErrZeroDistance indicates a move of no steps.
	ErrZeroDistance = errors.New("zero distance")
)

// Driver moves the physical axis.
type Driver interface {
	// BeginMove starts moving distance steps in dir at speed steps/s.
	BeginMove(dir Direction, distance uint32, speed uint32) (Handle, error)
	// BeginHome starts driving toward the home reference. On completion
	// the driver's origin is the home position and Done reports 0.
	BeginHome() (Handle, error)
	// Stop halts any motion and returns the current position.
	Stop() int32
	// Poll reports the progress of a motion. A handle which is no
	// longer current polls as Done at the current position.
	Poll(Handle) Status
}
