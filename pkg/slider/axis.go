// Package slider implements the motion state machine of the slider axis.
package slider

import "github.com/robotalks/slider.go/pkg/motor"

// State is the motion state of the axis.
type State int

// States
const (
	StateIdle State = iota
	StateMoving
	StateHoming
	StateError
)

var stateNames = [...]string{"idle", "moving", "homing", "error"}

// String returns the name used on the wire.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Busy indicates a motion is running.
func (s State) Busy() bool {
	return s == StateMoving || s == StateHoming
}

// Target of a running move.
type Target struct {
	Position int32
	Speed    uint32
}

// Axis is the state of the slider axis.
type Axis struct {
	// Position in steps relative to home.
	Position int32
	State    State
	Homed    bool
	// Target is set while moving.
	Target *Target
	// Fault is latched in StateError.
	Fault *motor.Fault
}

// Equal compares the values of two Axis states.
func (a Axis) Equal(b Axis) bool {
	if a.Position != b.Position || a.State != b.State || a.Homed != b.Homed || a.Fault != b.Fault {
		return false
	}
	if a.Target == nil || b.Target == nil {
		return a.Target == b.Target
	}
	return *a.Target == *b.Target
}

func (a Axis) clone() Axis {
	if a.Target != nil {
		target := *a.Target
		a.Target = &target
	}
	return a
}
