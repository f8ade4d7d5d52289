// Package errors provides the standardized error taxonomy for the news agent.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Provider / fetch path
	ErrCodeProviderNotConfigured ErrorCode = "PROVIDER_NOT_CONFIGURED"
	ErrCodeFetchFailed           ErrorCode = "FETCH_FAILED"
	ErrCodeProviderTimeout       ErrorCode = "PROVIDER_TIMEOUT"

	// Discussion / language generation path
	ErrCodeGenerationFailed  ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationTimeout ErrorCode = "GENERATION_TIMEOUT"

	// HTTP boundary
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewFetchError wraps a news provider failure. Retryable on the next user
// turn; nothing in the core retries automatically.
func NewFetchError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   fmt.Sprintf("News provider '%s' request failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError marks a fetch that exceeded its deadline.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("News provider '%s' timeout", provider),
		Details:   "request exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationError wraps a language-generation failure.
func NewGenerationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Language generation request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTimeoutError marks a generation call that exceeded its deadline.
func NewGenerationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "Language generation timeout",
		Details:   "request exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationNotConfiguredError reports a missing generation credential.
// Unlike missing news credentials this is a failure, surfaced to the user
// as the stock discussion fallback.
func NewGenerationNotConfiguredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderNotConfigured,
		Message:   "Language generation credential not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports missing or malformed request fields at the
// HTTP boundary.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from err when it wraps a StandardError,
// returning "" otherwise.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsFetchError reports whether err originated in a provider fetch.
func IsFetchError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeFetchFailed || code == ErrCodeProviderTimeout
}

// IsGenerationError reports whether err originated in language generation.
func IsGenerationError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeGenerationFailed || code == ErrCodeGenerationTimeout ||
		code == ErrCodeProviderNotConfigured
}

// IsRetryable reports whether a subsequent identical call may succeed.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}
