package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown            Code = "unknown"
	CodeFetchFailed        Code = "fetch_failed"
	CodeConfigurationError Code = "configuration_error"
)

// FetchFailureMessage is the only text a failed issue fetch ever shows.
const FetchFailureMessage = "Failed to fetch issues"

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// FetchFailure reports that the issue list could not be loaded. The cause is
// kept for logging; Error() always returns FetchFailureMessage.
func FetchFailure(cause error) Error {
	return New(CodeFetchFailed, FetchFailureMessage, cause)
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// DisplayMessage is the text shown to the user for err.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var structured Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	return err.Error()
}
