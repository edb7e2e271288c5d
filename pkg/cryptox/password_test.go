package cryptox

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("secret123", hash))
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("wrong", hash), ErrMismatch)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("", hash), ErrMismatch)
	})
}

func TestVerifyPasswordMalformedHashes(t *testing.T) {
	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plainly-not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad parameters", "$argon2id$v=19$m=?,t=?,p=?$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyPassword("whatever", tc.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestVerifyPasswordHonoursEmbeddedParameters(t *testing.T) {
	// A hash recorded with cheaper parameters than the package defaults must
	// still verify, otherwise a parameter bump would lock out existing users.
	salt := []byte("salt-salt-salt-0")
	sum := argon2.IDKey([]byte("pw"+GetPepper()), salt, 1, 8, 1, 32)
	legacy := fmt.Sprintf(
		"$argon2id$v=19$m=8,t=1,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	)

	require.NoError(t, VerifyPassword("pw", legacy))
	require.ErrorIs(t, VerifyPassword("not-pw", legacy), ErrMismatch)
}
