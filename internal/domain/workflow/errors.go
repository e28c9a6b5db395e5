package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not allowed in the current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGuardFailed is returned when every guard for a permitted trigger fails
	ErrGuardFailed = errors.New("guard condition failed")
)
