// Package errors carries the coded errors shared by the agent, its HTTP API and the feeder.
//
// Code ranges:
//   - 100-199 validation: bad ticks, bad configuration, bad version strings. The API answers 400.
//   - 200-299 storage: the trade sink failed to record or list fills. The API answers 500.
//   - 400-499 strategy: unknown or duplicate registry names, raised at startup.
//   - 500-599 agent: the account broke one of its invariants; the cause is an *InvariantError.
//   - 700-799 feed: tick sources, the agent HTTP client and version checks, never seen by the agent.
//
// Declined trades (no money, spike filter, grace period) are decisions, not errors, and carry no code.
//
//	if errors.HasCode(err, errors.ErrCodeTradeSinkFailed) {
//		// the fill is applied but missing from the sink
//	}
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error. Cause, when set, is reachable through errors.Is and errors.As.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an error without a cause.
func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to cause. cause may be nil.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is mirrors the standard errors.Is so callers need one import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As mirrors the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost *Error in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether GetCode(err) is code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InvariantError describes an account state that can never be reached by
// correct open/close transitions. It is a defect, not a recoverable condition.
type InvariantError struct {
	Rule    string // Name of the violated rule
	Message string // Human-readable message
}

// NewInvariantError creates a new InvariantError.
func NewInvariantError(rule, format string, args ...any) *InvariantError {
	return &InvariantError{
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Rule, e.Message)
}

// IsInvariantError checks if an error is an InvariantError.
// It uses errors.As to check the error chain.
func IsInvariantError(err error) bool {
	var invariantErr *InvariantError

	return errors.As(err, &invariantErr)
}
