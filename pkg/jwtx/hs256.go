package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the smallest accepted HMAC secret. Anything shorter is a
// deployment error, not something to paper over with a default.
const MinSecretLength = 32

var (
	ErrMissingSecret = errors.New("jwtx: signing secret is not configured")
	ErrWeakSecret    = errors.New("jwtx: signing secret is too short")

	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// HS256 signs and verifies session tokens with a single shared secret.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewHS256 creates a signer/verifier pair over the given secret. The secret
// is required and must be at least MinSecretLength bytes; there is no
// fallback value.
func NewHS256(secret []byte, issuer string, ttl time.Duration) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &HS256{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (h *HS256) TTL() time.Duration { return h.ttl }

// Sign mints a session token for the given user identity, expiring TTL from
// now.
func (h *HS256) Sign(userID, email, role string) (string, error) {
	return h.SignAt(userID, email, role, time.Now().UTC())
}

// SignAt is Sign with an explicit issuance time, useful for tests.
func (h *HS256) SignAt(userID, email, role string, now time.Time) (string, error) {
	claims := NewSessionClaims(userID, email, role, h.issuer, h.ttl, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// Verify checks signature and expiry and returns the decoded claims. Claim
// content beyond that (a present user id) is the caller's concern.
func (h *HS256) Verify(raw string) (SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return h.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return SessionClaims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return SessionClaims{}, ErrMalformed
		default:
			return SessionClaims{}, ErrInvalidSig
		}
	}
	if !token.Valid {
		return SessionClaims{}, ErrInvalidSig
	}
	return *claims, nil
}
