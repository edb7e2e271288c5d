// Package jwtx issues and verifies the signed session tokens carried in the
// browser cookie. Tokens are HS256 over a shared secret; validity is entirely
// signature plus expiry, there is no server-side session state.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for a session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims are the claims embedded in a session token. We are keeping
// additive changes to preserve compatibility for later.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID identifies the authenticated user.
	UserID string `json:"userId,omitempty"`

	// LegacyUserID carries the user id under the old "id" claim name. Early
	// tokens were minted with this name; it is read, never written.
	LegacyUserID string `json:"id,omitempty"`

	// Email of the user at issuance time.
	Email string `json:"email,omitempty"`

	// Role of the user at issuance time. Informational only: authorization
	// decisions re-read the user record, so a stale role here is harmless.
	Role string `json:"role,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
func NewSessionClaims(userID, email, role, issuer string, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}
}

// UserRef returns the user id claim. This is an explicit ordered fallback:
// "userId" wins, then the legacy "id" name. Empty means the token carries no
// usable identity and must be rejected by the caller.
func (c SessionClaims) UserRef() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.LegacyUserID
}
