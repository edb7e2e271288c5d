package possdk

// User is the safe projection of a user record as returned by the API.
// It never carries a password hash, points is always a non-negative
// integer, and timestamps are RFC 3339 strings or null.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Points    int64   `json:"points"`
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

// Normalize applies the projection defaults in place: empty name becomes
// "Unknown", empty role becomes "user", negative points clamp to zero.
func (u *User) Normalize() {
	if u.Name == "" {
		u.Name = "Unknown"
	}
	if u.Role == "" {
		u.Role = "user"
	}
	if u.Points < 0 {
		u.Points = 0
	}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

// MeResponse is the body of the who-am-I endpoint. User is null when the
// request carried no valid session, in which case Error explains why.
type MeResponse struct {
	User  *User  `json:"user"`
	Error string `json:"error,omitempty"`
}

// MessageResponse is the body of simple acknowledgement responses
// such as logout and delete.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse wraps a single user, as returned by create and update.
type UserResponse struct {
	User *User `json:"user"`
}

// UsersResponse is the body of the admin list endpoint.
type UsersResponse struct {
	Users []User `json:"users"`
}

// CreateUserRequest is the admin create body. Points may be omitted to
// leave the reward balance unset.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Points   *int64 `json:"points,omitempty"`
}

// UpdateUserRequest is the admin update body. Password, when non-empty,
// replaces the stored hash; all other fields overwrite unconditionally.
type UpdateUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Points   *int64 `json:"points,omitempty"`
	Password string `json:"password,omitempty"`
}

// UserPatch is a partial update merged into the cached user by
// SessionStore.UpdateUser. Nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	Points *int64
}
