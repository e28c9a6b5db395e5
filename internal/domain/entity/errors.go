package entity

import "errors"

var (
	// ErrValidation is returned for malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrNoApproverConfigured is returned when a department/location has no level-1 approver
	ErrNoApproverConfigured = errors.New("no approver configured for department/location")

	// ErrForbidden is returned when the actor is not allowed to perform the action
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a transition raced with a concurrent update
	ErrConflict = errors.New("conflicting concurrent update")
)
