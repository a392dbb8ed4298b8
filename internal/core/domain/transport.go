package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Server messages the search endpoint answers with on rejection.
const (
	ServerMessageAuthFail       = "auth fail"
	ServerMessageFetchForbidden = "fetch forbidden"
)

// TransportError is the single failure kind of a product search.
// It covers network failures, cancelled requests, non-2xx responses and
// bodies that cannot be decoded.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message is the server supplied text, or a description of the failure.
	Message string

	// Payload is the raw response body, if any.
	Payload []byte

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("search request failed (status %d): %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("search request failed (status %d)", e.StatusCode)
	case e.Message != "":
		return "search request failed: " + e.Message
	default:
		return "search request failed"
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the server answered.
func (e *TransportError) HasResponse() bool {
	return e.StatusCode != 0
}

// IsUnauthorized reports whether the server rejected the client identifier.
func (e *TransportError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsRateLimited reports whether the server throttled this identifier.
func (e *TransportError) IsRateLimited() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode == http.StatusForbidden &&
		strings.Contains(e.Message, ServerMessageFetchForbidden)
}

// AsTransportError extracts a TransportError from an error chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
