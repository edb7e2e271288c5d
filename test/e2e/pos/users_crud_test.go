package pos_test

import (
	"net/http"
	"testing"

	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/stretchr/testify/require"
)

// TestUsersRequireAdmin verifies the management API is closed to
// anonymous callers and plain members.
func TestUsersRequireAdmin(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)
	createUser(t, admin, possdk.CreateUserRequest{
		Email:    "member@b.com",
		Password: "secret123",
	})

	t.Run("anonymous", func(t *testing.T) {
		client := possdk.NewSDKClient(baseURL)
		_, err := client.ListUsers(t.Context(), "", "")

		var apiErr *possdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("plain member", func(t *testing.T) {
		client := possdk.NewSDKClient(baseURL)
		_, err := client.Login(t.Context(), "member@b.com", "secret123")
		require.NoError(t, err)

		_, err = client.ListUsers(t.Context(), "", "")

		var apiErr *possdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, "Admin access required", apiErr.Message)
	})
}

// TestUsersLifecycle walks a user record through create, list, update,
// and delete via the admin API.
func TestUsersLifecycle(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)

	created := createUser(t, admin, possdk.CreateUserRequest{
		Name:     "Coach Kim",
		Email:    "Coach.Kim@Club.com",
		Password: "secret123",
	})
	require.Equal(t, "coach.kim@club.com", created.Email)
	require.Equal(t, "user", created.Role)
	require.Equal(t, int64(0), created.Points)
	require.NotNil(t, created.CreatedAt)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := admin.CreateUser(t.Context(), possdk.CreateUserRequest{
			Email:    "COACH.KIM@club.com",
			Password: "secret123",
		})

		var apiErr *possdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("search finds the new user", func(t *testing.T) {
		users, err := admin.ListUsers(t.Context(), "coach", "")
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, created.ID, users[0].ID)
	})

	t.Run("role filter excludes members", func(t *testing.T) {
		admins, err := admin.ListUsers(t.Context(), "", "admin")
		require.NoError(t, err)
		require.Len(t, admins, 1)
		require.Equal(t, adminEmail, admins[0].Email)
	})

	t.Run("update changes role and password", func(t *testing.T) {
		points := int64(10)
		updated, err := admin.UpdateUser(t.Context(), possdk.UpdateUserRequest{
			ID:       created.ID,
			Name:     "Coach Kim",
			Email:    "coach.kim@club.com",
			Role:     "admin",
			Points:   &points,
			Password: "newsecret",
		})
		require.NoError(t, err)
		require.Equal(t, "admin", updated.Role)
		require.Equal(t, int64(10), updated.Points)

		// The new password works, the old one no longer does.
		client := possdk.NewSDKClient(baseURL)
		_, err = client.Login(t.Context(), "coach.kim@club.com", "newsecret")
		require.NoError(t, err)

		_, err = client.Login(t.Context(), "coach.kim@club.com", "secret123")
		var apiErr *possdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("delete removes the user", func(t *testing.T) {
		require.NoError(t, admin.DeleteUser(t.Context(), created.ID))

		err := admin.DeleteUser(t.Context(), created.ID)
		var apiErr *possdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

// TestUsersValidation exercises the request validation on the admin API.
func TestUsersValidation(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)

	cases := []struct {
		name string
		req  possdk.CreateUserRequest
	}{
		{"short password", possdk.CreateUserRequest{Email: "x@b.com", Password: "abc"}},
		{"missing email", possdk.CreateUserRequest{Password: "secret123"}},
		{"invalid role", possdk.CreateUserRequest{Email: "x@b.com", Password: "secret123", Role: "owner"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := admin.CreateUser(t.Context(), tc.req)

			var apiErr *possdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		})
	}
}
