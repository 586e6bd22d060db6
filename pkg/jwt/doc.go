// Package jwt signs and verifies HS256 JSON Web Tokens.
//
// The identity service uses Service to mint short-lived per-user access tokens
// with the project's JWT secret (force logout needs a token for every user it
// signs out). The checkout handler uses DecodeUnverified to read the caller's
// email as a prefill hint; that path performs no verification at all.
package jwt
