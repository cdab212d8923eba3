package auth

import (
	"time"
)

// Claims carries the validated contents of a credential
type Claims struct {
	Subject   string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenProvider issues and validates signed, time-bounded credentials.
// Validation rejects tokens with a bad signature, missing required claims,
// or an expiry in the past, surfacing ErrUnauthorized.
type TokenProvider interface {
	Issue(subject string) (token string, expiresIn time.Duration, err error)
	Validate(token string) (*Claims, error)
}
