package possdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// persistedState is the slice of store state that survives restarts.
// Only the user is durable; loading and error flags are transient.
type persistedState struct {
	User *User `json:"user"`
}

// SessionStore is a process-wide cache of the authenticated user backed
// by a Storage adapter. It mirrors how a browser client holds its session:
// mutations are individually locked but network calls are not serialized
// against each other, so overlapping calls race and the last write to the
// cache wins. That is deliberate; callers wanting ordering must provide it.
type SessionStore struct {
	client  *SDKClient
	storage Storage

	// Navigate, when set, is invoked by Logout with the login entry point
	// ("/login"), standing in for a browser redirect.
	Navigate func(path string)

	mu      sync.RWMutex
	user    *User
	loading bool
	errMsg  string
}

// NewSessionStore builds a store over the given client and storage and
// hydrates the cached user from any previously persisted state. A corrupt
// or missing persisted value starts the store empty rather than failing.
func NewSessionStore(client *SDKClient, storage Storage) *SessionStore {
	s := &SessionStore{client: client, storage: storage}

	data, ok, err := storage.Load(StorageKey)
	if err == nil && ok {
		var state persistedState
		if json.Unmarshal(data, &state) == nil && state.User != nil {
			state.User.Normalize()
			s.user = state.User
		}
	}
	return s
}

// persist writes the durable slice of state. Must be called with mu held.
// Storage failures are swallowed: the cache is authoritative for the
// lifetime of the process and a failed write only costs persistence.
func (s *SessionStore) persist() {
	data, err := json.Marshal(persistedState{User: s.user})
	if err != nil {
		return
	}
	_ = s.storage.Save(StorageKey, data)
}

// SetUser replaces the cached user with a normalized copy, or clears the
// cache when given nil. Any stored error is cleared either way.
func (s *SessionStore) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		s.user = nil
	} else {
		copied := *u
		copied.Normalize()
		s.user = &copied
	}
	s.errMsg = ""
	s.persist()
}

// UpdateUser merges the non-nil patch fields into the cached user. A
// no-op when nothing is cached.
func (s *SessionStore) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Email != nil {
		s.user.Email = *patch.Email
	}
	if patch.Role != nil {
		s.user.Role = *patch.Role
	}
	if patch.Points != nil {
		s.user.Points = *patch.Points
	}
	s.user.Normalize()
	s.persist()
}

// UpdatePoints replaces only the cached user's points. A no-op when
// nothing is cached.
func (s *SessionStore) UpdatePoints(points int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	s.user.Points = points
	s.user.Normalize()
	s.persist()
}

// ClearUser drops the cached user and any stored error.
func (s *SessionStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.errMsg = ""
	s.persist()
}

// FetchUser asks the server who the session cookie belongs to.
//
// A 401 means there is no session: the cache is cleared and (nil, nil) is
// returned, since an absent session is an expected state, not an error.
// Any other failure clears the cache and surfaces the error. A success
// whose user lacks an id or email is rejected as ErrInvalidServerResponse.
func (s *SessionStore) FetchUser(ctx context.Context) (*User, error) {
	s.setLoading(true)
	user, err := s.client.CurrentUser(ctx)
	s.setLoading(false)

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			s.ClearUser()
			return nil, nil
		}
		s.fail(err.Error())
		return nil, err
	}

	if user == nil {
		s.ClearUser()
		return nil, nil
	}
	if user.ID == "" || user.Email == "" {
		err := fmt.Errorf("%w: user payload missing identity fields", ErrInvalidServerResponse)
		s.fail(err.Error())
		return nil, err
	}

	s.SetUser(user)
	return s.User(), nil
}

// Login authenticates and caches the returned user. A failure clears the
// cache and records the server's error message for display.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*User, error) {
	s.setLoading(true)
	user, err := s.client.Login(ctx, email, password)
	s.setLoading(false)

	if err != nil {
		s.fail(loginErrorMessage(err))
		return nil, err
	}

	s.SetUser(user)
	return s.User(), nil
}

// loginErrorMessage prefers the server's own message, falling back to a
// generic one for transport-level failures.
func loginErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Login failed"
}

// Logout tells the server to drop the session, ignoring any failure:
// logout must always complete locally even on a dead network. The cache
// is cleared unconditionally and Navigate, when set, is sent to /login.
func (s *SessionStore) Logout(ctx context.Context) {
	_ = s.client.Logout(ctx)

	s.ClearUser()
	if s.Navigate != nil {
		s.Navigate("/login")
	}
}

// RefreshUser re-fetches the current user without risking the session.
// With nothing cached it is a no-op returning nil. On any failure, an
// unauthenticated answer, or a malformed payload the previously cached
// user is retained: only an explicit FetchUser 401 or a Logout may clear
// a known-good session.
func (s *SessionStore) RefreshUser(ctx context.Context) *User {
	if !s.IsAuthenticated() {
		return nil
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil || user == nil || user.ID == "" || user.Email == "" {
		return s.User()
	}

	s.SetUser(user)
	return s.User()
}

// User returns a copy of the cached user, or nil.
func (s *SessionStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated reports whether a user is cached.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsAdmin reports whether the cached user holds the admin role.
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == "admin"
}

// Loading reports whether a FetchUser or Login call is in flight.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error message, empty when none.
func (s *SessionStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ClearErr drops the recorded error message.
func (s *SessionStore) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *SessionStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// fail records an error message and clears the cached user.
func (s *SessionStore) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = msg
	s.user = nil
	s.persist()
}
