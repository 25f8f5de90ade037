package llm

import (
	"errors"
	"fmt"
)

// APIError represents an API-level error returned by the completion provider.
type APIError struct {
	HTTPStatus int    `json:"http_status"`
	Status     string `json:"status"`
	ErrorMsg   string `json:"error_message"`
}

func (e APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("completion API error (HTTP %d): %s - %s", e.HTTPStatus, e.Status, e.ErrorMsg)
	}
	return fmt.Sprintf("completion API error (HTTP %d): %s", e.HTTPStatus, e.ErrorMsg)
}

// NetworkError represents connection and timeout failures reaching the
// provider.
type NetworkError struct {
	Operation string `json:"operation"`
	ErrorMsg  string `json:"error_message"`
	Wrapped   error  `json:"-"`
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %s", e.Operation, e.ErrorMsg)
}

func (e NetworkError) Unwrap() error {
	return e.Wrapped
}

// MalformedOutputError means the model's text could not be interpreted as
// the expected JSON envelope. RawOutput carries the offending text so the
// HTTP layer can expose it for diagnosis.
type MalformedOutputError struct {
	Operation string `json:"operation"`
	RawOutput string `json:"raw_output"`
	Wrapped   error  `json:"-"`
}

func (e MalformedOutputError) Error() string {
	return fmt.Sprintf("model returned non-JSON response for %s: %s", e.Operation, e.RawOutput)
}

func (e MalformedOutputError) Unwrap() error {
	return e.Wrapped
}

// ConfigurationError represents invalid provider configuration.
type ConfigurationError struct {
	Field    string `json:"field"`
	ErrorMsg string `json:"error_message"`
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.ErrorMsg)
}

// NewAPIError creates an API error from a provider response.
func NewAPIError(httpStatus int, status, message string) APIError {
	return APIError{
		HTTPStatus: httpStatus,
		Status:     status,
		ErrorMsg:   message,
	}
}

// NewNetworkError creates a network error wrapping the transport failure.
func NewNetworkError(operation, message string, wrapped error) NetworkError {
	return NetworkError{
		Operation: operation,
		ErrorMsg:  message,
		Wrapped:   wrapped,
	}
}

// NewMalformedOutputError creates a malformed-output error carrying the raw
// model text.
func NewMalformedOutputError(operation, rawOutput string, wrapped error) MalformedOutputError {
	return MalformedOutputError{
		Operation: operation,
		RawOutput: rawOutput,
		Wrapped:   wrapped,
	}
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(field, message string) ConfigurationError {
	return ConfigurationError{
		Field:    field,
		ErrorMsg: message,
	}
}

// AsMalformedOutput extracts a MalformedOutputError from an error chain.
func AsMalformedOutput(err error) (MalformedOutputError, bool) {
	var malformed MalformedOutputError
	ok := errors.As(err, &malformed)
	return malformed, ok
}

// IsMalformedOutput reports whether err was caused by unparseable model
// output.
func IsMalformedOutput(err error) bool {
	_, ok := AsMalformedOutput(err)
	return ok
}
