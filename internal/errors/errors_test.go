// Package errors provides tests for error handling.
package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorMessage(t *testing.T) {
	err := &CLIError{
		Code:       ErrCodeOperationFailed,
		Message:    "Operation failed",
		Details:    "backend said no",
		Suggestion: "Try again.",
	}

	msg := err.Error()
	assert.Contains(t, msg, "Operation failed: backend said no")
	assert.Contains(t, msg, "Suggestion: Try again.")
}

func TestCLIErrorWithoutSuggestion(t *testing.T) {
	err := NewAbortedError("user deletion")

	assert.Equal(t, ErrCodeAborted, err.Code)
	assert.Equal(t, ExitAborted, err.ExitCode)
	assert.False(t, strings.Contains(err.Error(), "Suggestion:"))
}

func TestNewConfigParseError(t *testing.T) {
	err := NewConfigParseError("/home/admin/.ethz_iam_webservice", errors.New("yaml: line 3: mapping values"))

	assert.Equal(t, ErrCodeConfigParse, err.Code)
	assert.Equal(t, ExitValidation, err.ExitCode)
	assert.Contains(t, err.Error(), "/home/admin/.ethz_iam_webservice")
	assert.Contains(t, err.Error(), "yaml: line 3")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("group", "science-it")

	assert.Equal(t, ExitNotFound, err.ExitCode)
	assert.Contains(t, err.Error(), "group 'science-it' not found")
}

func TestNewPartialFailureError(t *testing.T) {
	err := NewPartialFailureError(2, 5)

	assert.Equal(t, ErrCodePartialFailure, err.Code)
	assert.Equal(t, ExitPartialFailure, err.ExitCode)
	assert.Contains(t, err.Error(), "2 of 5 operations failed")
}

func TestNewUnavailableError(t *testing.T) {
	err := NewUnavailableError("https://iam.passwort.ethz.ch", errors.New("connection refused"))

	assert.Equal(t, ErrCodeBackendUnavailable, err.Code)
	assert.Equal(t, ExitUnavailable, err.ExitCode)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewAuthenticationErrorNilCause(t *testing.T) {
	err := NewAuthenticationError("https://iam.passwort.ethz.ch", nil)

	assert.Equal(t, ErrCodeAuthenticationFailed, err.Code)
	assert.Empty(t, err.Details)
	assert.Contains(t, err.Suggestion, "https://iam.passwort.ethz.ch")
}
