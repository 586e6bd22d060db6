package redis

import "errors"

var (
	ErrMissingURL = errors.New("redis: connection url is empty")
	ErrInvalidURL = errors.New("redis: connection url cannot be parsed")
	ErrNotReady   = errors.New("redis: server did not answer ping before the retry budget ran out")

	// ErrUnreachable is returned by the readiness probe.
	ErrUnreachable = errors.New("redis: event log backend is unreachable")
)
