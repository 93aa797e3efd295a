// Package errors provides structured error types and recovery suggestions.
//
// Purpose:
//
//	Define consistent error types across all CLI commands with recovery
//	suggestions and clear error messages. Every error carries an exit code
//	so scripts can distinguish auth failures, missing entities, declined
//	confirmations and partial batch failures.
package errors

import (
	"fmt"
)

// ErrorCode represents a standardized error code.
type ErrorCode string

const (
	// ErrCodeConfigParse indicates a malformed admin-account config file.
	ErrCodeConfigParse ErrorCode = "CONFIG_PARSE_FAILED"
	// ErrCodeUnsupportedConfig indicates a legacy config file was found.
	ErrCodeUnsupportedConfig ErrorCode = "UNSUPPORTED_CONFIG"
	// ErrCodeAuthenticationFailed indicates authentication failure.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeBackendUnavailable indicates the backend could not be reached.
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// ErrCodeNotFound indicates the requested entity does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeValidationFailed indicates input validation failure.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeOperationFailed indicates a general operation failure.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeAborted indicates the operator declined a confirmation gate.
	ErrCodeAborted ErrorCode = "ABORTED"
	// ErrCodePartialFailure indicates some items of a batch mutation failed.
	ErrCodePartialFailure ErrorCode = "PARTIAL_FAILURE"
)

// Exit codes, stable for scriptability.
const (
	ExitOperation      = 1
	ExitValidation     = 2
	ExitUnavailable    = 3
	ExitNotFound       = 4
	ExitAborted        = 5
	ExitPartialFailure = 6
)

// CLIError represents a structured CLI error with a recovery suggestion.
type CLIError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
	Details    string
	ExitCode   int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Suggestion != "" {
		msg += "\n\nSuggestion: " + e.Suggestion
	}
	return msg
}

// NewConfigParseError creates an error for a malformed admin-account file.
func NewConfigParseError(path string, cause error) *CLIError {
	return &CLIError{
		Code:       ErrCodeConfigParse,
		Message:    fmt.Sprintf("Failed to parse config file %s", path),
		Details:    cause.Error(),
		Suggestion: "Fix the YAML syntax of the admin-account file. No accounts were loaded.",
		ExitCode:   ExitValidation,
	}
}

// NewUnsupportedConfigError creates an error for the legacy config path.
func NewUnsupportedConfigError(path string) *CLIError {
	return &CLIError{
		Code:       ErrCodeUnsupportedConfig,
		Message:    fmt.Sprintf("Legacy config file %s is not supported", path),
		Suggestion: "Remove the legacy file or migrate it to the admin-account YAML format.",
		ExitCode:   ExitValidation,
	}
}

// NewAuthenticationError creates an error for rejected credentials.
func NewAuthenticationError(host string, cause error) *CLIError {
	e := &CLIError{
		Code:       ErrCodeAuthenticationFailed,
		Message:    "Authentication failed",
		Suggestion: fmt.Sprintf("Verify your admin credentials for %s.", host),
		ExitCode:   ExitOperation,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewUnavailableError creates an error for an unreachable backend.
func NewUnavailableError(host string, cause error) *CLIError {
	e := &CLIError{
		Code:       ErrCodeBackendUnavailable,
		Message:    fmt.Sprintf("Backend %s is unreachable", host),
		Suggestion: "Check the host, your network connection and the backend status.",
		ExitCode:   ExitUnavailable,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(kind, id string) *CLIError {
	return &CLIError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s '%s' not found", kind, id),
		Suggestion: "Verify the identifier. Nothing was modified.",
		ExitCode:   ExitNotFound,
	}
}

// NewValidationError creates an error for validation failures.
func NewValidationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   ExitValidation,
	}
}

// NewOperationError creates an error for operation failures.
func NewOperationError(message, suggestion string) *CLIError {
	return &CLIError{
		Code:       ErrCodeOperationFailed,
		Message:    "Operation failed",
		Details:    message,
		Suggestion: suggestion,
		ExitCode:   ExitOperation,
	}
}

// NewAbortedError creates an error for a declined confirmation gate.
func NewAbortedError(operation string) *CLIError {
	return &CLIError{
		Code:     ErrCodeAborted,
		Message:  fmt.Sprintf("Aborted: %s was not confirmed", operation),
		ExitCode: ExitAborted,
	}
}

// NewPartialFailureError creates an error summarizing a partially failed batch.
func NewPartialFailureError(failed, total int) *CLIError {
	return &CLIError{
		Code:       ErrCodePartialFailure,
		Message:    fmt.Sprintf("%d of %d operations failed", failed, total),
		Suggestion: "Inspect the per-item results above. Successful items were applied.",
		ExitCode:   ExitPartialFailure,
	}
}
