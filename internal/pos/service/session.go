package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/jwtx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
)

var (
	// ErrNotAuthenticated means the request carried no session cookie.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidToken means the token failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken means the token verified but carries no user id claim.
	ErrMalformedToken = errors.New("malformed token payload")

	// ErrUserNotFound means the token is valid but its user row is gone.
	ErrUserNotFound = errors.New("user not found")
)

// SessionService issues session tokens after authentication and resolves
// them back to live user records on later requests.
type SessionService struct {
	Tokens *jwtx.HS256
	Store  store.Store
}

// Issue signs a session token for the given user.
func (s *SessionService) Issue(user domain.User) (string, error) {
	return s.Tokens.Sign(user.ID, user.Email, string(user.Role.OrDefault()))
}

// TTL is the lifetime of issued tokens, which is also the cookie MaxAge.
func (s *SessionService) TTL() time.Duration {
	return s.Tokens.TTL()
}

// ResolveRequest reads the session cookie from r and resolves it to the
// current user, re-read from the store so the result never reflects a
// stale token snapshot.
func (s *SessionService) ResolveRequest(ctx context.Context, r *http.Request) (possdk.User, error) {
	raw, ok := httpx.SessionToken(r)
	if !ok {
		return possdk.User{}, ErrNotAuthenticated
	}

	claims, err := s.Tokens.Verify(raw)
	if err != nil {
		return possdk.User{}, ErrInvalidToken
	}

	userID := claims.UserRef()
	if userID == "" {
		return possdk.User{}, ErrMalformedToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return possdk.User{}, ErrUserNotFound
		}
		return possdk.User{}, err
	}

	return SafeUser(user), nil
}

// ResolveIdentity adapts ResolveRequest for the authn middleware.
func (s *SessionService) ResolveIdentity(ctx context.Context, r *http.Request) (httpx.Identity, error) {
	user, err := s.ResolveRequest(ctx, r)
	if err != nil {
		return httpx.Identity{}, err
	}
	return httpx.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
