package jwt

import "errors"

// Token shape and verification failures.
var (
	ErrInvalidToken            = errors.New("jwt: token is malformed or not yet valid")
	ErrInvalidSignature        = errors.New("jwt: signature does not match the project secret")
	ErrUnexpectedSigningMethod = errors.New("jwt: only HS256 tokens are accepted")
	ErrExpiredToken            = errors.New("jwt: token has expired")
)

// Claim and key failures.
var (
	ErrMissingSigningKey = errors.New("jwt: signing secret is empty")
	ErrMissingClaims     = errors.New("jwt: claims are empty")
	ErrInvalidClaims     = errors.New("jwt: claims segment cannot be decoded")
)
