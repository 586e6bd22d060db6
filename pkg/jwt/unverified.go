package jwt

import (
	"net/http"
	"strings"
)

// DecodeUnverified decodes the payload segment of token into claims WITHOUT
// checking the signature, algorithm or expiry. The result is a hint for
// prefilling forms and must never drive an authorization decision.
func DecodeUnverified(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[1] == "" {
		return ErrInvalidToken
	}
	if claims == nil {
		return ErrMissingClaims
	}
	if err := decodeJSONSegment(parts[1], claims); err != nil {
		return ErrInvalidClaims
	}
	return nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
