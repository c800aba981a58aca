// Package errors provides the error taxonomy for routed pages: typed route
// errors and the Fault union the error boundary renders.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrBadRequest       = errors.New("bad request")
)

// RouteError represents a routing-layer failure carrying an HTTP status
type RouteError struct {
	Status     int
	StatusText string
	Data       string
}

func (e *RouteError) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("%d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Data)
}

// Is allows comparison with sentinel errors
func (e *RouteError) Is(target error) bool {
	switch target {
	case ErrRouteNotFound:
		return e.Status == http.StatusNotFound
	case ErrMethodNotAllowed:
		return e.Status == http.StatusMethodNotAllowed
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	// Match with another RouteError of the same status
	if other, ok := target.(*RouteError); ok {
		return other.Status == e.Status
	}
	return false
}

// NewRouteError creates a new RouteError; StatusText is derived from status
func NewRouteError(status int, data string) *RouteError {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return &RouteError{Status: status, StatusText: text, Data: data}
}

// NotFound creates a 404 RouteError for path
func NotFound(path string) *RouteError {
	return NewRouteError(http.StatusNotFound, fmt.Sprintf("no route for %s", path))
}

// MethodNotAllowed creates a 405 RouteError
func MethodNotAllowed(method, path string) *RouteError {
	return NewRouteError(http.StatusMethodNotAllowed, fmt.Sprintf("%s is not supported on %s", method, path))
}

// BadRequest creates a 400 RouteError
func BadRequest(message string) *RouteError {
	return NewRouteError(http.StatusBadRequest, message)
}

// GetHTTPStatus extracts the HTTP status from err, or 0 when it carries none
func GetHTTPStatus(err error) int {
	var re *RouteError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
