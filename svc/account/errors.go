package account

import "errors"

var (
	ErrMissingUserID = errors.New("User ID is required")
	ErrListProfiles  = errors.New("failed to list profiles")
)
