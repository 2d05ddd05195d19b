package stt

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoSpeech is returned when audio was captured but nothing was
	// recognized in it.
	ErrNoSpeech = errors.New("stt: no speech recognized")

	// ErrTimeout is returned when no speech began within the listen window.
	ErrTimeout = errors.New("stt: timed out waiting for speech")

	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("stt: API key required")

	// ErrNoSource is returned when no audio source was configured.
	ErrNoSource = errors.New("stt: audio source required")

	// ErrClosed is returned when using a recognizer after Close.
	ErrClosed = errors.New("stt: recognizer closed")
)

// APIError represents an error response from a recognition API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Provider identifies which recognizer returned the error.
	Provider string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("stt [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsUnauthorized returns true if this is an authentication error (HTTP 401).
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// ProviderError wraps an error with recognizer context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("stt [%s]: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with recognizer context.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}

// IsServiceError reports whether err is a backend failure rather than an
// absence of recognizable speech. Callers use this to pick a recovery
// strategy: service errors skip retries, speech errors retry.
func IsServiceError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoSpeech) || errors.Is(err, ErrTimeout) {
		return false
	}
	return true
}
