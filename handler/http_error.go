package handler

import (
	"errors"
	"net/http"
)

// HTTPError attaches a status code and a machine-readable key to an error.
// Error returns the wrapped error's message verbatim.
type HTTPError struct {
	Code int
	Key  string
	Err  error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e HTTPError) Unwrap() error { return e.Err }

// NewHTTPError builds an HTTPError with a plain message.
func NewHTTPError(code int, msg string) HTTPError {
	return HTTPError{Code: code, Key: keyFor(code), Err: errors.New(msg)}
}

// WithStatus wraps err with code. An HTTPError already in err's chain keeps its own status.
func WithStatus(code int, err error) error {
	if err == nil {
		return nil
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return HTTPError{Code: code, Key: keyFor(code), Err: err}
}

func BadRequest(err error) error { return WithStatus(http.StatusBadRequest, err) }
func Internal(err error) error   { return WithStatus(http.StatusInternalServerError, err) }

// StatusOf returns the status carried by err, or 500.
func StatusOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.Code > 0 {
		return httpErr.Code
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func keyFor(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusMultiStatus:
		return "partial_failure"
	default:
		if code >= http.StatusInternalServerError {
			return "internal_error"
		}
		return "request_error"
	}
}
