package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize caps JSON and raw request bodies (1MB).
const DefaultMaxBodySize = 1 << 20

type jsonOptions struct {
	strict  bool
	maxSize int64
}

// JSONOption tunes the JSON binder.
type JSONOption func(*jsonOptions)

// Strict rejects bodies carrying fields the target struct does not declare.
func Strict() JSONOption {
	return func(o *jsonOptions) { o.strict = true }
}

// MaxSize overrides DefaultMaxBodySize.
func MaxSize(n int64) JSONOption {
	return func(o *jsonOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// JSON decodes the request body into v.
//
// A missing Content-Type is accepted since browser fetch wrappers and curl
// frequently omit it; any other media type than application/json is rejected.
// Unknown fields are ignored unless Strict is given.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	o := jsonOptions{maxSize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, ct)
			}
		}

		body, err := readLimited(r, o.maxSize)
		if err != nil {
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		dec := json.NewDecoder(bytesReader(body))
		if o.strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}
		return nil
	}
}

func readLimited(r *http.Request, maxSize int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if int64(len(body)) > maxSize {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
