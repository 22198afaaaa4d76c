package wire

import "fmt"

// Error is an error reported on the wire as ERROR <code> <REASON>.
type Error struct {
	Code   int
	Reason string
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Reason)
}

// Stable error codes. The host matches on the reason token; codes never
// change once published.
var (
	// ErrBusy rejects a motion command while the axis is moving or homing.
	ErrBusy = &Error{Code: 21, Reason: "BUSY"}
	// ErrUnknownCommand rejects an unrecognized verb.
	ErrUnknownCommand = &Error{Code: 30, Reason: "UNKNOWN_COMMAND"}
	// ErrMissingSteps rejects MOVE without STEPS.
	ErrMissingSteps = &Error{Code: 31, Reason: "MISSING_STEPS"}
	// ErrInvalidSpeed rejects a SPEED which is not a positive integer.
	ErrInvalidSpeed = &Error{Code: 32, Reason: "INVALID_SPEED"}
	// ErrInvalidSteps rejects a malformed or zero STEPS, or a target out of range.
	ErrInvalidSteps = &Error{Code: 33, Reason: "INVALID_STEPS"}
	// ErrHomeFailed is reported when the driver can't start homing.
	ErrHomeFailed = &Error{Code: 34, Reason: "HOME_FAILED"}
	// ErrMoveFailed is reported when the driver can't start a move.
	ErrMoveFailed = &Error{Code: 35, Reason: "MOVE_FAILED"}
)
