package generation

import "fmt"

// CallError represents a failed model call for one row, after retries.
type CallError struct {
	Row      int
	Attempts int
	Cause    error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation call failed for row %d after %d attempt(s): %v", e.Row, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("generation call failed for row %d after %d attempt(s)", e.Row, e.Attempts)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model response that is not usable copy.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
