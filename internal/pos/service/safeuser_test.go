package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/stretchr/testify/require"
)

func TestSafeUser(t *testing.T) {
	t.Parallel()

	t.Run("applies projection defaults", func(t *testing.T) {
		safe := SafeUser(domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "hash"})
		require.Equal(t, "Unknown", safe.Name)
		require.Equal(t, "user", safe.Role)
		require.Equal(t, int64(0), safe.Points)
		require.Nil(t, safe.CreatedAt)
		require.Nil(t, safe.UpdatedAt)
	})

	t.Run("negative points clamp to zero", func(t *testing.T) {
		neg := int64(-5)
		safe := SafeUser(domain.User{ID: "u1", Points: &neg})
		require.Equal(t, int64(0), safe.Points)
	})

	t.Run("timestamps serialize as RFC 3339", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		safe := SafeUser(domain.User{ID: "u1", CreatedAt: at, UpdatedAt: at})
		require.NotNil(t, safe.CreatedAt)
		require.Equal(t, "2024-03-01T12:00:00Z", *safe.CreatedAt)
	})

	t.Run("never serializes a hash", func(t *testing.T) {
		safe := SafeUser(domain.User{ID: "u1", PasswordHash: "argon2id-secret"})
		data, err := json.Marshal(safe)
		require.NoError(t, err)
		require.NotContains(t, string(data), "argon2id-secret")
		require.NotContains(t, string(data), "password")
	})
}
