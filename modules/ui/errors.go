package ui

import "errors"

var ErrInvalidToggleID = errors.New("Toggle ID must be 1-64 lowercase letters, digits, dashes or underscores")
