package service

import (
	"context"
	"testing"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/cryptox"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestUserServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &UserService{Store: newTestStore(t)}

	t.Run("creates with defaults applied", func(t *testing.T) {
		user, err := svc.Create(ctx, possdk.CreateUserRequest{
			Email:    "New.Member@Club.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "new.member@club.com", user.Email)
		require.Equal(t, "Unknown", user.Name)
		require.Equal(t, "user", user.Role)
		require.Equal(t, int64(0), user.Points)
		require.NotNil(t, user.CreatedAt)
	})

	t.Run("creates an admin with points", func(t *testing.T) {
		user, err := svc.Create(ctx, possdk.CreateUserRequest{
			Name:     "Coach Kim",
			Email:    "coach@club.com",
			Password: "secret123",
			Role:     "admin",
			Points:   int64Ptr(50),
		})
		require.NoError(t, err)
		require.Equal(t, "admin", user.Role)
		require.Equal(t, int64(50), user.Points)
	})

	t.Run("validation rejections", func(t *testing.T) {
		cases := []struct {
			name string
			req  possdk.CreateUserRequest
		}{
			{"missing email", possdk.CreateUserRequest{Password: "secret123"}},
			{"not an email", possdk.CreateUserRequest{Email: "nope", Password: "secret123"}},
			{"short password", possdk.CreateUserRequest{Email: "a@b.com", Password: "short"}},
			{"bad role", possdk.CreateUserRequest{Email: "a@b.com", Password: "secret123", Role: "owner"}},
			{"negative points", possdk.CreateUserRequest{Email: "a@b.com", Password: "secret123", Points: int64Ptr(-1)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, tc.req)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, possdk.CreateUserRequest{
			Email:    "COACH@club.com",
			Password: "secret123",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	svc := &UserService{Store: s}
	seeded := seedUser(t, s, "update.me@club.com", "secret123", domain.RoleUser)

	t.Run("updates fields without touching the password", func(t *testing.T) {
		user, err := svc.Update(ctx, possdk.UpdateUserRequest{
			ID:     seeded.ID,
			Name:   "Renamed",
			Email:  "renamed@club.com",
			Role:   "admin",
			Points: int64Ptr(10),
		})
		require.NoError(t, err)
		require.Equal(t, "Renamed", user.Name)
		require.Equal(t, "admin", user.Role)
		require.Equal(t, int64(10), user.Points)

		stored, err := s.Users().GetUserByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.Equal(t, seeded.PasswordHash, stored.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("secret123", stored.PasswordHash))
	})

	t.Run("re-hashes when a password is supplied", func(t *testing.T) {
		_, err := svc.Update(ctx, possdk.UpdateUserRequest{
			ID:       seeded.ID,
			Email:    "renamed@club.com",
			Role:     "admin",
			Password: "newsecret",
		})
		require.NoError(t, err)

		stored, err := s.Users().GetUserByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("newsecret", stored.PasswordHash))
		require.ErrorIs(t, cryptox.VerifyPassword("secret123", stored.PasswordHash), cryptox.ErrMismatch)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, possdk.UpdateUserRequest{Email: "a@b.com"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, possdk.UpdateUserRequest{ID: "ghost", Email: "a@b.com"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("short replacement password", func(t *testing.T) {
		_, err := svc.Update(ctx, possdk.UpdateUserRequest{
			ID:       seeded.ID,
			Email:    "renamed@club.com",
			Password: "short",
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	svc := &UserService{Store: s}
	seeded := seedUser(t, s, "delete.me@club.com", "secret123", domain.RoleUser)

	require.NoError(t, svc.Delete(ctx, seeded.ID))
	require.ErrorIs(t, svc.Delete(ctx, seeded.ID), store.ErrNotFound)

	var vErr *ValidationError
	require.ErrorAs(t, svc.Delete(ctx, ""), &vErr)
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	svc := &UserService{Store: s}
	seedUser(t, s, "admin@club.com", "secret123", domain.RoleAdmin)
	seedUser(t, s, "player@club.com", "secret123", domain.RoleUser)

	t.Run("projections carry no hash and defaulted points", func(t *testing.T) {
		users, err := svc.List(ctx, domain.UserFilter{})
		require.NoError(t, err)
		require.Len(t, users, 2)
		for _, u := range users {
			require.Equal(t, int64(0), u.Points)
			require.NotEmpty(t, u.Role)
		}
	})

	t.Run("role filter", func(t *testing.T) {
		users, err := svc.List(ctx, domain.UserFilter{Role: domain.RoleAdmin})
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "admin@club.com", users[0].Email)
	})

	t.Run("bad role filter", func(t *testing.T) {
		_, err := svc.List(ctx, domain.UserFilter{Role: "owner"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestBootstrapEnsureAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("skipped when unconfigured", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s}
		require.NoError(t, svc.EnsureAdmin(ctx))

		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})

	t.Run("creates the admin on an empty table", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{
			Store:         s,
			AdminEmail:    "Boss@Club.com",
			AdminPassword: "secret123",
		}
		require.NoError(t, svc.EnsureAdmin(ctx))

		admin, err := s.Users().GetUserByEmail(ctx, "boss@club.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, admin.Role)
		require.NoError(t, cryptox.VerifyPassword("secret123", admin.PasswordHash))
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		s := newTestStore(t)
		seedUser(t, s, "existing@club.com", "secret123", domain.RoleUser)

		svc := &BootstrapService{
			Store:         s,
			AdminEmail:    "boss@club.com",
			AdminPassword: "secret123",
		}
		require.NoError(t, svc.EnsureAdmin(ctx))

		_, err := s.Users().GetUserByEmail(ctx, "boss@club.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("weak bootstrap password is rejected", func(t *testing.T) {
		svc := &BootstrapService{
			Store:         newTestStore(t),
			AdminEmail:    "boss@club.com",
			AdminPassword: "short",
		}
		require.Error(t, svc.EnsureAdmin(ctx))
	})
}
