package client

import (
	"fmt"
)

// Kind identifies the failure category of a RequestError.
type Kind string

const (
	// KindInvalidURL is returned when the call target is empty or unparsable
	KindInvalidURL Kind = "InvalidURL"

	// KindRequestCanceled is returned when the before-request hook vetoes the call
	KindRequestCanceled Kind = "RequestCanceled"

	// KindTimeout is returned when the timeout timer wins the transport race
	KindTimeout Kind = "Timeout"

	// KindHTTPStatus is returned when the response status is outside [200,300)
	KindHTTPStatus Kind = "HTTPStatusError"

	// KindNetwork is returned when the transport call itself fails
	KindNetwork Kind = "NetworkError"
)

// RequestError is the error type surfaced by every failed call. Status holds
// the HTTP status code for KindHTTPStatus errors and 0 otherwise; Response is
// attached for status failures so callers can inspect the raw response.
type RequestError struct {
	Kind     Kind
	Message  string
	Status   int
	Response *Response
	Cause    error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error kinds for errors.Is.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Kind == targetErr.Kind
	}
	return false
}

// newError creates a RequestError with the given kind and message.
func newError(kind Kind, format string, args ...interface{}) *RequestError {
	return &RequestError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// normalizeError funnels any failure into a RequestError. Errors that are
// already RequestErrors pass through; anything else becomes a NetworkError
// with status 0.
func normalizeError(err error) *RequestError {
	if err == nil {
		return nil
	}
	if rerr, ok := err.(*RequestError); ok {
		return rerr
	}
	return &RequestError{
		Kind:    KindNetwork,
		Message: err.Error(),
		Cause:   err,
	}
}
