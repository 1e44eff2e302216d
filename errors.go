package testpilot

import (
	"errors"
	"fmt"
)

// RuntimeError wraps any failure of the orchestrator itself: validation,
// preflight or engine errors. It maps to exit code 2.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a RuntimeError wrapping err.
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError.
func IsRuntimeError(err error) bool {
	var rErr *RuntimeError
	return err != nil && errors.As(err, &rErr)
}

// TestFailureError signals that the run itself completed but one or more
// tests failed. It maps to exit code 1.
type TestFailureError struct {
	Message string
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("test failure: %s", e.Message)
}

// NewTestFailureError creates a TestFailureError with the given message.
func NewTestFailureError(message string) *TestFailureError {
	return &TestFailureError{Message: message}
}

// IsTestFailureError checks if the error is or wraps a TestFailureError.
func IsTestFailureError(err error) bool {
	var fErr *TestFailureError
	return err != nil && errors.As(err, &fErr)
}
