package identity

import "errors"

var (
	ErrNotConfigured   = errors.New("identity provider is not configured")
	ErrDeleteUser      = errors.New("failed to delete user")
	ErrSignOutUser     = errors.New("failed to sign out user")
	ErrMintSessionJWT  = errors.New("failed to mint user token")
	ErrMissingJWTSecret = errors.New("SUPABASE_JWT_SECRET is required to sign users out")
)
