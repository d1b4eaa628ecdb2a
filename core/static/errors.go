package static

import (
	"fmt"
	"net/http"
)

// Error is a static-serving failure carrying the HTTP status it maps to.
// Sentinels are compared by identity, so wrap them with fmt.Errorf("%w").
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e *Error) StatusCode() int {
	return e.Status
}

var (
	// ErrNotFound covers unmatched paths, missing files, ignored dotfiles and
	// directories without an index file.
	ErrNotFound = &Error{Status: http.StatusNotFound, Message: "static: file not found"}

	// ErrForbidden is returned for paths escaping the mount root and for denied dotfiles.
	ErrForbidden = &Error{Status: http.StatusForbidden, Message: "static: forbidden"}

	// ErrRangeNotSatisfiable is matched by every *RangeError.
	ErrRangeNotSatisfiable = &Error{Status: http.StatusRequestedRangeNotSatisfiable, Message: "static: range not satisfiable"}

	// ErrMethodNotAllowed is returned by the registry handler for anything but GET and HEAD.
	ErrMethodNotAllowed = &Error{Status: http.StatusMethodNotAllowed, Message: "static: method not allowed"}

	// ErrIO wraps unexpected filesystem failures.
	ErrIO = &Error{Status: http.StatusInternalServerError, Message: "static: file read failed"}

	// ErrInvalidMount is returned at registration time. It never occurs per request.
	ErrInvalidMount = &Error{Status: http.StatusInternalServerError, Message: "static: invalid mount configuration"}
)

// RangeError reports a Range header that cannot be satisfied for a file of Size bytes.
type RangeError struct {
	Size   int64
	Header string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %q for %d bytes", ErrRangeNotSatisfiable.Message, e.Header, e.Size)
}

// StatusCode returns 416.
func (e *RangeError) StatusCode() int {
	return http.StatusRequestedRangeNotSatisfiable
}

// Is makes errors.Is(err, ErrRangeNotSatisfiable) hold for any *RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrRangeNotSatisfiable
}

// ContentRange renders the Content-Range value sent with a 416 response.
func (e *RangeError) ContentRange() string {
	return fmt.Sprintf("bytes */%d", e.Size)
}
