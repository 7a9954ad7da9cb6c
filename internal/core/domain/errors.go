package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used with errors.Is across the service.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError indicates input that fails shape or range checks at the
// boundary. It always maps to a 400 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// AuthError indicates a missing, malformed or expired credential. Raised
// before any network call when the session holds no usable token.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NotFoundError indicates zero results from track acquisition or a missing
// resource. Callers must treat this as a distinct, reportable condition
// rather than an empty result set.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RateLimitError indicates an upstream quota or rate limit was hit.
// RetryAfter carries the upstream hint in seconds; zero means unknown.
type RateLimitError struct {
	Service    string
	RetryAfter int
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}
	if e.Service == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Service, msg)
}

// TranslationError indicates the generative model produced output that could
// not be turned into a descriptor (no JSON object, or unparsable JSON).
type TranslationError struct {
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("translation: %s", e.Reason)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// UpstreamError indicates a third-party API failure with an HTTP response.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.Status, e.Message)
}

// TransportError indicates a network-level failure before any HTTP response
// was received. Its status is conventionally reported as 0.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
