package service

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType classifies failures so handlers can map them with a type switch
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeAuth
	ErrorTypeUpstreamRejected
	ErrorTypeUpstreamUnavailable
	ErrorTypeUpstreamTimeout
	ErrorTypePartialSuccess
	ErrorTypeInvalidCurrency
)

func (errorType ErrorType) String() string {
	switch errorType {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeAuth:
		return "auth"
	case ErrorTypeUpstreamRejected:
		return "upstream_rejected"
	case ErrorTypeUpstreamUnavailable:
		return "upstream_unavailable"
	case ErrorTypeUpstreamTimeout:
		return "upstream_timeout"
	case ErrorTypePartialSuccess:
		return "partial_success"
	case ErrorTypeInvalidCurrency:
		return "invalid_currency"
	default:
		return "unknown"
	}
}

// ServiceError represents a service-specific error with type information.
// Details carries the upstream payload, if any, for the client-facing body.
type ServiceError struct {
	Type    ErrorType
	Message string
	Details interface{}
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown when err is not a ServiceError
func TypeOf(err error) ErrorType {
	var serviceError *ServiceError
	if errors.As(err, &serviceError) {
		return serviceError.Type
	}
	return ErrorTypeUnknown
}

// DetailsOf returns the upstream details carried by err, if any
func DetailsOf(err error) interface{} {
	var serviceError *ServiceError
	if errors.As(err, &serviceError) {
		return serviceError.Details
	}
	return nil
}

// classifyTransportError turns a failed outbound call into a ServiceError
func classifyTransportError(message string, err error) *ServiceError {
	var serviceError *ServiceError
	if errors.As(err, &serviceError) {
		return serviceError
	}

	errorType := ErrorTypeUpstreamUnavailable
	var netError net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		errorType = ErrorTypeUpstreamTimeout
	case errors.As(err, &netError) && netError.Timeout():
		errorType = ErrorTypeUpstreamTimeout
	}

	return &ServiceError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}
