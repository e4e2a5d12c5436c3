package devicemgmt

import (
	"errors"
	"fmt"
)

// Session and dispatch errors.
var (
	// ErrNotConfigured is returned when an action is invoked on a
	// session that was never configured.
	ErrNotConfigured = errors.New("session not configured")

	// ErrAlreadyConfigured is returned when Configure is called on a
	// session that already holds an identity.
	ErrAlreadyConfigured = errors.New("session already configured")

	// ErrInvalidConfig indicates an invalid session configuration.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNotImplemented matches any NotImplementedError via errors.Is.
	ErrNotImplemented = errors.New("action not implemented")
)

// ValidationError reports a caller-supplied parameter that failed its
// declared constraint. It is raised before any network activity.
type ValidationError struct {
	// Param is the offending parameter name.
	Param string

	// Constraint describes the violated constraint.
	Constraint string
}

// Error returns a one-line description of the violation.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Constraint)
}

// NotImplementedError reports an action that is recognized but
// deliberately not implemented. It is always raised, never silently
// ignored, so callers can distinguish a local stub from a device-side
// failure.
type NotImplementedError struct {
	// Action is the recognized but unimplemented action.
	Action Action
}

// Error returns a one-line description naming the action.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("action %s not implemented", e.Action)
}

// Is reports a match for the ErrNotImplemented sentinel.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}
