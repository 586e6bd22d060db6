package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the wrapper's ErrorHandler instead of rendering anything,
// so handler failures are logged and enveloped like binding failures.
func Error(err error) Response {
	return errorResponse{err: err}
}
