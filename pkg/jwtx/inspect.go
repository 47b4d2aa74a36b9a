// Package jwtx inspects access tokens on the client side.
//
// Inspection deliberately decodes WITHOUT verifying the signature: the
// client only reads the expiry claim as a hint for deciding when to
// refresh. The server remains the sole authority on token validity, and
// no signing keys are ever distributed to clients. Do not "fix" this into
// signature verification.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrNoExpiry  = errors.New("jwtx: no expiry claim")
)

// Claims are the decoded payload fields the client cares about. They are
// derived on demand, never stored.
type Claims struct {
	jwt.RegisteredClaims

	// Username of the authenticated user, when the issuer includes it.
	// Display only.
	Username string `json:"username,omitempty"`
}

// Decode parses the token payload without verifying its signature.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformed
	}

	return claims, nil
}

// ExpiresAt returns the token's expiry instant. Tokens without an exp
// claim report ErrNoExpiry so callers fail closed.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := Decode(token)
	if err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the token must be treated as expired at now.
// Absent, malformed and exp-less tokens are all expired; only a token
// whose expiry is strictly in the past otherwise counts as expired.
func IsExpired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}

	return exp.Before(now)
}
