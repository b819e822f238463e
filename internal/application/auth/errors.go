package auth

import "errors"

var (
	// ErrSecretMissing indicates the signing secret is not configured.
	// This is a deployment fault, surfaced as a server error, and must be
	// detected before token validation so it never masquerades as a bad token.
	ErrSecretMissing = errors.New("signing secret not configured")

	// ErrTokenExpired indicates a structurally valid token past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed indicates a token whose signature or structure is invalid
	ErrTokenMalformed = errors.New("token malformed")

	// ErrInvalidIDToken indicates a Google ID token that failed verification
	// (bad signature, wrong audience, expired, or missing required claims)
	ErrInvalidIDToken = errors.New("invalid google id token")
)
