package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToReadBody     = errors.New("failed to read request body")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrUnsupportedTarget    = errors.New("unsupported bind target")
)
