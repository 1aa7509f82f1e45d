package quoter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telarmoda/shipping/pkg/quoter"
)

func TestProviderError_Error(t *testing.T) {
	err := quoter.NewProviderError("skydropx", "TEST_CODE", "test message")
	assert.Equal(t, "skydropx error (TEST_CODE): test message", err.Error())
}

func TestProviderError_ErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := quoter.NewProviderError("skydropx", "TEST_CODE", "test message").WithCause(cause)
	assert.Contains(t, err.Error(), "underlying error")
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := quoter.NewProviderError("skydropx", "TEST_CODE", "test message").WithCause(cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestProviderError_Is(t *testing.T) {
	err1 := quoter.NewProviderError("skydropx", "SAME_CODE", "message one")
	err2 := quoter.NewProviderError("ivoy", "SAME_CODE", "message two")

	assert.True(t, errors.Is(err1, err2))
}

func TestProviderError_IsNot(t *testing.T) {
	err1 := quoter.NewProviderError("skydropx", "CODE_A", "message")
	err2 := quoter.NewProviderError("skydropx", "CODE_B", "message")

	assert.False(t, errors.Is(err1, err2))
}

func TestProviderError_WithStatusCode(t *testing.T) {
	err := quoter.NewProviderError("skydropx", "CODE", "msg").WithStatusCode(502)
	assert.Equal(t, 502, err.StatusCode)
}

func TestProviderError_WithRetryable(t *testing.T) {
	err := quoter.NewProviderError("skydropx", "CODE", "msg").WithRetryable(true)
	assert.True(t, err.Retryable)
}

func TestIsRetryable_ProviderError(t *testing.T) {
	err := quoter.NewProviderError("skydropx", "CODE", "msg").WithRetryable(true)
	assert.True(t, quoter.IsRetryable(err))
}

func TestIsRetryable_ProviderErrorNotRetryable(t *testing.T) {
	err := quoter.NewProviderError("skydropx", "CODE", "msg")
	assert.False(t, quoter.IsRetryable(err))
}

func TestIsRetryable_ProviderUnavailable(t *testing.T) {
	assert.True(t, quoter.IsRetryable(quoter.ErrProviderUnavailable))
}

func TestIsRetryable_InvalidInput(t *testing.T) {
	assert.False(t, quoter.IsRetryable(quoter.ErrInvalidInput))
}

func TestIsFatal_FatalClasses(t *testing.T) {
	assert.True(t, quoter.IsFatal(quoter.ErrMissingCredentials))
	assert.True(t, quoter.IsFatal(quoter.ErrAuthenticationFailed))
	assert.True(t, quoter.IsFatal(quoter.ErrInvalidInput))
}

func TestIsFatal_DegradedClasses(t *testing.T) {
	assert.False(t, quoter.IsFatal(quoter.ErrProviderUnavailable))
	assert.False(t, quoter.IsFatal(quoter.ErrNoQuotes))
	assert.False(t, quoter.IsFatal(quoter.NewProviderError("skydropx", "CODE", "msg")))
}

func TestIsFatal_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), quoter.ErrAuthenticationFailed)
	assert.True(t, quoter.IsFatal(wrapped))
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"missing credentials", quoter.ErrMissingCredentials, "missing provider credentials"},
		{"authentication failed", quoter.ErrAuthenticationFailed, "carrier authentication failed"},
		{"invalid input", quoter.ErrInvalidInput, "invalid quote input"},
		{"provider unavailable", quoter.ErrProviderUnavailable, "provider unavailable"},
		{"no quotes", quoter.ErrNoQuotes, "no shipping options available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}
