package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	assert.Equal(t, "bad input", (&ServiceError{Message: "bad input"}).Error())

	cause := errors.New("boom")
	wrapped := &ServiceError{Message: "call failed", Cause: cause}
	assert.Equal(t, "call failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorTypeAuth, TypeOf(&ServiceError{Type: ErrorTypeAuth}))
	assert.Equal(t, ErrorTypeAuth, TypeOf(fmt.Errorf("wrapped: %w", &ServiceError{Type: ErrorTypeAuth})))
}

func TestDetailsOf(t *testing.T) {
	assert.Nil(t, DetailsOf(errors.New("plain")))
	assert.Equal(t, "payload", DetailsOf(&ServiceError{Details: "payload"}))
}

func TestClassifyTransportError(t *testing.T) {
	assert.Equal(t, ErrorTypeUpstreamTimeout,
		classifyTransportError("x", fmt.Errorf("failed to make request: %w", context.DeadlineExceeded)).Type)
	assert.Equal(t, ErrorTypeUpstreamUnavailable,
		classifyTransportError("x", errors.New("connection refused")).Type)

	existing := &ServiceError{Type: ErrorTypeUpstreamRejected}
	assert.Same(t, existing, classifyTransportError("x", existing))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "upstream_timeout", ErrorTypeUpstreamTimeout.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}
