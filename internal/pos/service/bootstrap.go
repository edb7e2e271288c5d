package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/cryptox"
	"github.com/shuttleworks/smashpos/pkg/idx"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// BootstrapService seeds the initial admin account. Without it a fresh
// deployment has no session holder able to reach the user management API.
type BootstrapService struct {
	Store store.Store
	// AdminEmail and AdminPassword come from the environment. When either
	// is unset bootstrap is skipped.
	AdminEmail    string
	AdminPassword string
}

// EnsureAdmin creates the configured admin when the users table is
// empty. It is safe to run on every startup; a non-empty table or
// missing configuration makes it a no-op.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AdminEmail == "" || s.AdminPassword == "" {
		l.Debug("bootstrap admin not configured, skipping")
		return nil
	}
	if len(s.AdminPassword) < MinPasswordLength {
		return fmt.Errorf("bootstrap admin password must be at least %d characters", MinPasswordLength)
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check users table: %w", err)
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	admin := domain.User{
		ID:           string(idx.New()),
		Email:        strings.ToLower(strings.TrimSpace(s.AdminEmail)),
		Name:         "Admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	l.Info("bootstrap admin created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	return nil
}
