package imdb

import (
	"errors"
	"fmt"
)

// Fetch outcomes. Every Client.Fetch failure wraps exactly one of these,
// so callers can switch on errors.Is without a fallthrough case.
var (
	// ErrNoInternetConnection is returned when the request never reached
	// the server (DNS failure, connection refused, no route).
	ErrNoInternetConnection = errors.New("no internet connection")

	// ErrRequestTimedOut is returned when the transport-level deadline expired.
	ErrRequestTimedOut = errors.New("request timed out")

	// ErrTooManyRequests is returned on HTTP 429.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrServiceUnavailable is returned on HTTP 503.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnknownError is returned for any other non-2xx HTTP status.
	ErrUnknownError = errors.New("unknown server error")

	// ErrEmptyData is returned when a 2xx response carried no body.
	ErrEmptyData = errors.New("empty response body")
)

// DecodeError indicates the catalog payload could not be decoded.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode catalog: %v", e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EmptyCatalogError indicates the catalog decoded fine but contained no
// movies. Message carries the server-supplied errorMessage verbatim.
type EmptyCatalogError struct {
	Message string
}

// Error implements the error interface.
func (e *EmptyCatalogError) Error() string {
	if e.Message == "" {
		return "catalog contains no movies"
	}
	return fmt.Sprintf("catalog contains no movies: %s", e.Message)
}
