package pos_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/stretchr/testify/require"
)

// TestMeWithoutSession verifies the who-am-I endpoint reports 401 with a
// null user when no cookie is presented.
func TestMeWithoutSession(t *testing.T) {
	baseURL := setupService(t)

	client := possdk.NewSDKClient(baseURL)
	_, err := client.CurrentUser(t.Context())

	var apiErr *possdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Not authenticated", apiErr.Message)
}

// TestMeWithTamperedToken verifies a forged cookie is rejected.
func TestMeWithTamperedToken(t *testing.T) {
	baseURL := setupService(t)

	client := possdk.NewSDKClient(baseURL)
	u, err := url.Parse(baseURL)
	require.NoError(t, err)
	client.HTTPClient.Jar.SetCookies(u, []*http.Cookie{
		{Name: "token", Value: "eyJhbGciOiJIUzI1NiJ9.forged.signature"},
	})

	_, err = client.CurrentUser(t.Context())

	var apiErr *possdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid token", apiErr.Message)
}

// TestMeAfterUserDeleted verifies a valid cookie for a deleted user
// yields 404, not a stale projection from the token snapshot.
func TestMeAfterUserDeleted(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)
	created := createUser(t, admin, possdk.CreateUserRequest{
		Email:    "doomed@b.com",
		Password: "secret123",
	})

	client := possdk.NewSDKClient(baseURL)
	_, err := client.Login(t.Context(), "doomed@b.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(t.Context(), created.ID))

	_, err = client.CurrentUser(t.Context())

	var apiErr *possdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "User not found", apiErr.Message)
}

// TestMeReflectsStoreChanges verifies /me re-reads the user row rather
// than trusting claims baked into the token at login time.
func TestMeReflectsStoreChanges(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)
	created := createUser(t, admin, possdk.CreateUserRequest{
		Email:    "mutable@b.com",
		Password: "secret123",
	})

	client := possdk.NewSDKClient(baseURL)
	_, err := client.Login(t.Context(), "mutable@b.com", "secret123")
	require.NoError(t, err)

	points := int64(75)
	_, err = admin.UpdateUser(t.Context(), possdk.UpdateUserRequest{
		ID:     created.ID,
		Name:   "Mutable Member",
		Email:  "mutable@b.com",
		Role:   "user",
		Points: &points,
	})
	require.NoError(t, err)

	me, err := client.CurrentUser(t.Context())
	require.NoError(t, err)
	require.Equal(t, int64(75), me.Points)
	require.Equal(t, "Mutable Member", me.Name)
}

// TestLogoutClearsSession verifies the logout cookie clears the session
// for subsequent requests on the same client.
func TestLogoutClearsSession(t *testing.T) {
	baseURL := setupService(t)
	admin := loginAsAdmin(t, baseURL)
	createUser(t, admin, possdk.CreateUserRequest{
		Email:    "leaver@b.com",
		Password: "secret123",
	})

	client := possdk.NewSDKClient(baseURL)
	_, err := client.Login(t.Context(), "leaver@b.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, client.Logout(t.Context()))

	_, err = client.CurrentUser(t.Context())
	var apiErr *possdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

// TestHealthEndpoints verifies the probes on a fully wired service.
func TestHealthEndpoints(t *testing.T) {
	baseURL := setupService(t)

	client := possdk.NewSDKClient(baseURL)
	require.NoError(t, client.Ready(t.Context()))

	resp, err := client.HTTPClient.Get(baseURL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
