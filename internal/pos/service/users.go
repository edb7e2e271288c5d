package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/cryptox"
	"github.com/shuttleworks/smashpos/pkg/idx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// MinPasswordLength applies to created users and password changes.
const MinPasswordLength = 6

// ValidationError reports a client-correctable problem with a request.
// Its message is safe to return verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// UserService is the admin-facing user management surface.
type UserService struct {
	Store store.Store
}

// List returns safe projections of users matching the filter, newest first.
func (s *UserService) List(ctx context.Context, filter domain.UserFilter) ([]possdk.User, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, invalid("Invalid role filter")
	}

	users, err := s.Store.Users().ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]possdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, SafeUser(u))
	}
	return out, nil
}

// Create provisions a new user and returns its safe projection.
func (s *UserService) Create(ctx context.Context, req possdk.CreateUserRequest) (possdk.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return possdk.User{}, invalid("A valid email is required")
	}
	if len(req.Password) < MinPasswordLength {
		return possdk.User{}, invalid("Password must be at least 6 characters")
	}
	role := domain.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		return possdk.User{}, invalid("Role must be user or admin")
	}
	if req.Points != nil && *req.Points < 0 {
		return possdk.User{}, invalid("Points cannot be negative")
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return possdk.User{}, err
	}

	user := domain.User{
		ID:           string(idx.New()),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role.OrDefault(),
		Points:       req.Points,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return possdk.User{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	// Re-read for the store-assigned timestamps.
	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return possdk.User{}, err
	}
	return SafeUser(created), nil
}

// Update overwrites an existing user's fields; the password is re-hashed
// only when one is supplied.
func (s *UserService) Update(ctx context.Context, req possdk.UpdateUserRequest) (possdk.User, error) {
	if req.ID == "" {
		return possdk.User{}, invalid("User id is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return possdk.User{}, invalid("A valid email is required")
	}
	role := domain.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		return possdk.User{}, invalid("Role must be user or admin")
	}
	if req.Points != nil && *req.Points < 0 {
		return possdk.User{}, invalid("Points cannot be negative")
	}
	if req.Password != "" && len(req.Password) < MinPasswordLength {
		return possdk.User{}, invalid("Password must be at least 6 characters")
	}

	existing, err := s.Store.Users().GetUserByID(ctx, req.ID)
	if err != nil {
		return possdk.User{}, err
	}

	existing.Email = email
	existing.Name = strings.TrimSpace(req.Name)
	existing.Role = role.OrDefault()
	existing.Points = req.Points

	if err := s.Store.Users().UpdateUser(ctx, existing); err != nil {
		return possdk.User{}, err
	}

	if req.Password != "" {
		hash, err := cryptox.HashPassword(req.Password)
		if err != nil {
			return possdk.User{}, err
		}
		if err := s.Store.Users().UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
			return possdk.User{}, err
		}
	}

	updated, err := s.Store.Users().GetUserByID(ctx, existing.ID)
	if err != nil {
		return possdk.User{}, err
	}
	return SafeUser(updated), nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("User id is required")
	}
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", id))
	return nil
}
