package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// JSONResponse is the envelope for function responses.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta sets meta on enveloped responses.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		if env, ok := r.body.(JSONResponse); ok {
			env.Meta = meta
			r.body = env
		}
	}
}

// JSON wraps v in the envelope's data field with status 200.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONRaw writes v as-is without the envelope, for peers that expect a fixed
// acknowledgment shape (webhook senders).
func JSONRaw(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the envelope's error field. The status comes from
// the error (HTTPError, ValidationError) unless overridden; the message is err.Error().
func JSONError(err error, opts ...JSONOption) Response {
	status := StatusOf(err)
	r := &jsonResponse{status: status, body: JSONResponse{Error: errorDetail(err, status)}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorDetail(err error, status int) *ErrorDetail {
	if err == nil {
		return &ErrorDetail{Code: keyFor(status), Message: http.StatusText(status)}
	}

	detail := &ErrorDetail{Code: keyFor(status), Message: err.Error()}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		detail.Code = "validation_error"
		detail.Details = make(map[string][]string, len(valErr))
		maps.Copy(detail.Details, valErr)
		return detail
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.Key != "" {
		detail.Code = httpErr.Key
	}
	return detail
}
