package pos_test

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/app"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests for the POS session service. The application is wired
 * exactly as in production but served in-process through httptest, and
 * every request goes through the possdk client the way an external
 * consumer would make it.
 */

const (
	testSecret    = "e2e-secret-0123456789abcdef012345"
	adminEmail    = "boss@club.com"
	adminPassword = "Admin123!"
)

// setupService builds a fully wired application over a fresh on-disk
// database, bootstraps the admin, and serves it via httptest.
func setupService(t *testing.T) string {
	t.Helper()

	cfg := app.Config{
		JWTSecret:              testSecret,
		Issuer:                 "smashpos-e2e",
		SessionTTL:             7 * 24 * time.Hour,
		DatabaseFile:           filepath.Join(t.TempDir(), "e2e.db"),
		BootstrapAdminEmail:    adminEmail,
		BootstrapAdminPassword: adminPassword,
		Env:                    "dev",
		LogLevel:               "error",
		LogFormat:              "text",
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// loginAsAdmin returns a client holding an admin session cookie.
func loginAsAdmin(t *testing.T, baseURL string) *possdk.SDKClient {
	t.Helper()

	client := possdk.NewSDKClient(baseURL)
	user, err := client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)
	return client
}

// createUser provisions a member through the admin API.
func createUser(t *testing.T, admin *possdk.SDKClient, req possdk.CreateUserRequest) *possdk.User {
	t.Helper()

	user, err := admin.CreateUser(t.Context(), req)
	require.NoError(t, err)
	return user
}
