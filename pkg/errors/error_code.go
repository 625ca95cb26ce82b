package errors

// ErrorCode identifies a failure class. The HTTP API returns it in the "code" field of error bodies.
type ErrorCode int

const (
	// ErrCodeUnknown is reported for errors that carry no code.
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199) are the caller's fault and map to HTTP 400.
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101 // config file, env or validator tags
	ErrCodeInvalidTick          ErrorCode = 102 // malformed or out of range on-tick payload
	ErrCodeInvalidVersion       ErrorCode = 104 // not a semver string

	// Storage errors (200-299) come from the trade sink.
	ErrCodeTradeSinkFailed      ErrorCode = 200 // a fill could not be recorded; the account still holds it
	ErrCodeTradeSinkUnavailable ErrorCode = 201 // the store could not be opened
	ErrCodeQueryFailed          ErrorCode = 202

	// Strategy errors (400-499) come from the registry.
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyAlreadyExists ErrorCode = 401

	// ErrCodeInvariantViolated means the account reached a state no open/close sequence can produce.
	ErrCodeInvariantViolated ErrorCode = 500

	// Feed errors (700-799) are raised on the feeder side only.
	ErrCodeFeedReadFailed     ErrorCode = 700
	ErrCodeFeedRequestFailed  ErrorCode = 701 // transport failure or non 2xx agent answer
	ErrCodeFeedParseFailed    ErrorCode = 702
	ErrCodeVersionMismatch    ErrorCode = 703 // agent and feeder differ in major or minor version
	ErrCodeInvalidFeedOptions ErrorCode = 705
)

// IsValidation reports whether the code belongs to the validation range (100-199).
func (c ErrorCode) IsValidation() bool {
	return c >= 100 && c < 200
}
