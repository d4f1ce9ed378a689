package portal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps failures that produced no HTTP response
	ErrTransport = errors.New("backend unreachable")
	// ErrMalformedResponse wraps bodies that could not be decoded
	ErrMalformedResponse = errors.New("malformed backend response")
	// ErrNoSession is returned when a login succeeds without setting the session cookie
	ErrNoSession = errors.New("backend did not issue a session cookie")
)

// StatusError is returned for any non-2xx response from the backend
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's "error" field, when present
	Message string
	// Body is the raw response body
	Body string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a StatusError
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether the backend answered 404
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the backend answered 401
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports whether the backend answered 403
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsConflict reports whether the backend answered 409
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// Message returns the backend's error message if err carries one, else err.Error()
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
