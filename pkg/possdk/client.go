package possdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the SmashPOS session service. The underlying
// http.Client carries a cookie jar so the session cookie set by Login is
// replayed on every subsequent request, the same way a browser would.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new service client with its own cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with an email and password. On success the session
// cookie is stored in the client's jar and the safe user projection is
// returned.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", Credentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}
	if loginResp.User == nil || loginResp.User.ID == "" {
		return nil, fmt.Errorf("%w: login succeeded without a user", ErrInvalidServerResponse)
	}
	return loginResp.User, nil
}

// CurrentUser resolves the session cookie to a live user record. The
// returned user may be nil when the server reports no session holder.
func (c *SDKClient) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var meResp MeResponse
	if err := decodeJSON(resp, &meResp, http.StatusOK); err != nil {
		return nil, err
	}
	return meResp.User, nil
}

// Logout clears the server-side session cookie.
func (c *SDKClient) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// ListUsers fetches user records, newest first. search filters
// case-insensitively on name and email; role filters exactly. Either may
// be empty. Requires an admin session.
func (c *SDKClient) ListUsers(ctx context.Context, search, role string) ([]User, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if role != "" {
		q.Set("role", role)
	}
	path := "/api/users"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var usersResp UsersResponse
	if err := decodeJSON(resp, &usersResp, http.StatusOK); err != nil {
		return nil, err
	}
	return usersResp.Users, nil
}

// CreateUser provisions a new user. Requires an admin session.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/users", req)
	if err != nil {
		return nil, err
	}

	var userResp UserResponse
	if err := decodeJSON(resp, &userResp, http.StatusCreated); err != nil {
		return nil, err
	}
	if userResp.User == nil {
		return nil, fmt.Errorf("%w: create returned no user", ErrInvalidServerResponse)
	}
	return userResp.User, nil
}

// UpdateUser overwrites an existing user's fields. Requires an admin session.
func (c *SDKClient) UpdateUser(ctx context.Context, req UpdateUserRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/users", req)
	if err != nil {
		return nil, err
	}

	var userResp UserResponse
	if err := decodeJSON(resp, &userResp, http.StatusOK); err != nil {
		return nil, err
	}
	if userResp.User == nil {
		return nil, fmt.Errorf("%w: update returned no user", ErrInvalidServerResponse)
	}
	return userResp.User, nil
}

// DeleteUser removes a user by id. Requires an admin session.
func (c *SDKClient) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/users?id="+url.QueryEscape(id), nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// Ready reports whether the service's readiness probe passes.
func (c *SDKClient) Ready(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
func (c *SDKClient) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doJSON marshals payload and performs the request with a JSON body.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doRequest(ctx, method, path, bytes.NewReader(data))
}

// decodeJSON decodes a JSON response into the target. Responses with an
// unexpected status are parsed into a typed *APIError instead.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
