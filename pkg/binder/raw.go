package binder

import (
	"bytes"
	"fmt"
	"net/http"
)

// RawBody is a bind target that receives the request body byte-for-byte.
// Signature verification must see exactly what the sender signed, so the
// body is neither decoded nor trimmed.
type RawBody struct {
	Payload   []byte
	Signature string
}

// Raw fills a *RawBody with the body and the value of signatureHeader.
// Other target types are rejected.
func Raw(signatureHeader string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		dst, ok := v.(*RawBody)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnsupportedTarget, v)
		}
		body, err := readLimited(r, DefaultMaxBodySize)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToReadBody, err)
		}
		dst.Payload = body
		if signatureHeader != "" {
			dst.Signature = r.Header.Get(signatureHeader)
		}
		return nil
	}
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
