package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/cryptox"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password. Callers must not distinguish the two; doing so would let an
// attacker enumerate registered emails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies email/password credentials against stored
// Argon2id hashes.
type AuthService struct {
	Store store.Store
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// loadDummyHash builds a throwaway hash used to equalize timing on the
// unknown-email path. Computed once, with the live hashing parameters.
func loadDummyHash() string {
	dummyHashOnce.Do(func() {
		h, err := cryptox.HashPassword("timing-equalizer")
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}

// VerifyCredentials resolves email (case-insensitively) to a user and
// checks the password against the stored hash. On success the full user
// record is returned; every authentication failure is
// ErrInvalidCredentials regardless of cause.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so unknown emails take as
			// long as wrong passwords.
			if h := loadDummyHash(); h != "" {
				_ = cryptox.VerifyPassword(password, h)
			}
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("password verification failed", slog.String("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}
