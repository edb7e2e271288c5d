package possdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shuttleworks/smashpos/pkg/httpx"
)

// APIError is the service's error envelope. It implements the error
// interface and is used both by the server (to write HTTP responses) and
// by the SDK client (to represent errors parsed from responses).
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Message is the client-facing error string.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": e.Message,
	})
}

// Predefined API errors. The server returns exactly these messages so
// clients can rely on them; in particular the bad-credentials message is
// identical for unknown emails and wrong passwords.
var (
	// ErrMissingFields is returned when the login body lacks an email or password.
	ErrMissingFields = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Email and password are required",
	}

	// ErrBadCredentials is returned for an unknown email or a wrong password.
	ErrBadCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid email or password",
	}

	// ErrNotAuthenticated is returned when the request carries no session cookie.
	ErrNotAuthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Not authenticated",
	}

	// ErrInvalidToken is returned when the session token fails signature or
	// expiry checks.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid token",
	}

	// ErrInvalidTokenPayload is returned when the token verifies but carries
	// no usable user id claim.
	ErrInvalidTokenPayload = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid token payload",
	}

	// ErrUserNotFound is returned when a valid token references a user row
	// that no longer exists.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "User not found",
	}

	// ErrAdminRequired is returned when a non-admin session hits an admin route.
	ErrAdminRequired = &APIError{
		StatusCode: http.StatusForbidden,
		Message:    "Admin access required",
	}

	// ErrServerError is the opaque envelope for unexpected failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	}
)

// ErrInvalidServerResponse is returned by the client when a success
// response is missing fields it cannot proceed without.
var ErrInvalidServerResponse = errors.New("invalid server response")

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Error,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
