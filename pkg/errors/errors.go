package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeConfiguration   = "CONFIGURATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUpstream        = "UPSTREAM_FAILURE"
	CodeResolutionEmpty = "RESOLUTION_EMPTY"
)

type RoastError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *RoastError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RoastError) Unwrap() error {
	return e.Cause
}

func (e *RoastError) WithCause(cause error) *RoastError {
	e.Cause = cause
	return e
}

// UserMessage is the short human-readable string shown to callers. Unlike
// Error, it never includes the wrapped cause.
func (e *RoastError) UserMessage() string {
	return e.Message
}

// ConfigurationError indicates a required credential or setting is missing.
// It is fatal to the request and surfaced verbatim.
type ConfigurationError struct {
	*RoastError
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		RoastError: &RoastError{
			Message:    message,
			Code:       CodeConfiguration,
			StatusCode: 500,
		},
	}
}

// NotFoundError indicates the provider definitively reported no such handle.
type NotFoundError struct {
	*RoastError
	Handle string
}

func NewNotFoundError(message, handle string) *NotFoundError {
	return &NotFoundError{
		RoastError: &RoastError{
			Message:    message,
			Code:       CodeNotFound,
			StatusCode: 404,
			Context: map[string]any{
				"handle": handle,
			},
		},
		Handle: handle,
	}
}

// RateLimitedError signals provider throttling; the resolver treats it as an
// escalation trigger rather than a user-facing failure.
type RateLimitedError struct {
	*RoastError
}

func NewRateLimitedError(message string, statusCode int) *RateLimitedError {
	return &RateLimitedError{
		RoastError: &RoastError{
			Message:    message,
			Code:       CodeRateLimited,
			StatusCode: statusCode,
		},
	}
}

// UpstreamError is a generic provider failure with optional detail.
type UpstreamError struct {
	*RoastError
}

func NewUpstreamError(message string, statusCode int, context map[string]any) *UpstreamError {
	return &UpstreamError{
		RoastError: &RoastError{
			Message:    message,
			Code:       CodeUpstream,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// ResolutionEmptyError means the fallback path completed but produced no
// usable profile data.
type ResolutionEmptyError struct {
	*RoastError
}

func NewResolutionEmptyError(message string) *ResolutionEmptyError {
	return &ResolutionEmptyError{
		RoastError: &RoastError{
			Message:    message,
			Code:       CodeResolutionEmpty,
			StatusCode: 502,
		},
	}
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsRateLimited(err error) bool {
	var target *RateLimitedError
	return errors.As(err, &target)
}

func IsResolutionEmpty(err error) bool {
	var target *ResolutionEmptyError
	return errors.As(err, &target)
}
