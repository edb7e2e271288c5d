package domain

import "time"

// Role is the coarse authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// OrDefault returns the role, defaulting to RoleUser when unset.
func (r Role) OrDefault() Role {
	if !r.Valid() {
		return RoleUser
	}
	return r
}

// User is the persisted user record. Email is stored lower-cased;
// PasswordHash is an Argon2id PHC string and must never leave the server.
type User struct {
	ID           string
	Email        string
	Name         string // empty means no display name recorded
	PasswordHash string
	Role         Role
	Points       *int64 // nullable reward balance
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PointsOrZero returns the reward balance with the null default applied.
// Never negative.
func (u User) PointsOrZero() int64 {
	if u.Points == nil || *u.Points < 0 {
		return 0
	}
	return *u.Points
}

// UserFilter narrows ListUsers results. Zero value matches everything.
type UserFilter struct {
	// Search matches case-insensitively against name and email substrings.
	Search string
	// Role, when set, matches exactly.
	Role Role
}
