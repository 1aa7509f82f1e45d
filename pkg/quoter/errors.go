package quoter

import (
	"errors"
	"fmt"
)

// ProviderError represents a degraded outcome from a single rate or
// courier provider. It is absorbed by the orchestrator into an empty
// quote set from that provider, never raised to the API layer.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ProviderError.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *ProviderError) WithRetryable(retryable bool) *ProviderError {
	e.Retryable = retryable
	return e
}

// Sentinel errors for the quoting engine's failure classes. Only the
// first three propagate to the API layer as hard failures; everything
// else degrades into a best-effort partial result.
var (
	// ErrMissingCredentials indicates a provider credential is absent
	// from configuration. Fails fast, never retried.
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrAuthenticationFailed indicates the carrier token exchange
	// failed. Fatal for the current quote call.
	ErrAuthenticationFailed = errors.New("carrier authentication failed")

	// ErrInvalidInput indicates an empty cart or missing destination,
	// rejected before any network call.
	ErrInvalidInput = errors.New("invalid quote input")

	// ErrProviderUnavailable indicates a provider call failed or timed
	// out. Non-fatal; the provider contributes zero quotes.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoQuotes indicates every provider returned zero usable
	// quotes. A valid user-visible outcome, encoded in the result
	// rather than returned from Quote.
	ErrNoQuotes = errors.New("no shipping options available")
)

// IsFatal reports whether the error must surface to the API layer as a
// hard failure rather than degrade into a partial result.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrAuthenticationFailed) ||
		errors.Is(err, ErrInvalidInput)
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return errors.Is(err, ErrProviderUnavailable)
}
