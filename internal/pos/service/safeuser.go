package service

import (
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/pkg/possdk"
)

// SafeUser projects a stored user into the client-facing shape: the
// password hash is dropped, name and role get their defaults, points is
// never null or negative, and timestamps become RFC 3339 strings (null
// when unset).
func SafeUser(u domain.User) possdk.User {
	name := u.Name
	if name == "" {
		name = "Unknown"
	}

	return possdk.User{
		ID:        u.ID,
		Name:      name,
		Email:     u.Email,
		Role:      string(u.Role.OrDefault()),
		Points:    u.PointsOrZero(),
		CreatedAt: timestampOrNil(u.CreatedAt),
		UpdatedAt: timestampOrNil(u.UpdatedAt),
	}
}

func timestampOrNil(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
