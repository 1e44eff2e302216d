package types

import (
	"errors"
	"fmt"
)

// ValidationError reports a bad run parameter. Validation failures are
// fatal and happen before any engine execution.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Param, e.Reason)
}

// NewValidationError creates a ValidationError naming the offending parameter.
func NewValidationError(param, reason string) *ValidationError {
	return &ValidationError{Param: param, Reason: reason}
}

// IsValidationError checks if the error is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return err != nil && errors.As(err, &vErr)
}

// PreflightError reports an unusable environment (unreachable session,
// missing or invalid test root). Preflight failures are fatal and happen
// before any engine execution.
type PreflightError struct {
	Message string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// NewPreflightError creates a PreflightError with a user-actionable message.
func NewPreflightError(format string, args ...any) *PreflightError {
	return &PreflightError{Message: fmt.Sprintf(format, args...)}
}

// IsPreflightError checks if the error is or wraps a PreflightError.
func IsPreflightError(err error) bool {
	var pErr *PreflightError
	return err != nil && errors.As(err, &pErr)
}

// EngineError wraps a failure of the external test engine itself. It is
// fatal to the run since no result model can be derived from it.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("test engine failed: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError wraps err as an EngineError.
func NewEngineError(err error) *EngineError {
	return &EngineError{Err: err}
}

// IsEngineError checks if the error is or wraps an EngineError.
func IsEngineError(err error) bool {
	var eErr *EngineError
	return err != nil && errors.As(err, &eErr)
}
