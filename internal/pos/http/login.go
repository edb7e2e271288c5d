package http

import (
	"errors"
	"net/http"

	"github.com/shuttleworks/smashpos/internal/pos/service"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// LoginHandler authenticates credentials and sets the session cookie.
type LoginHandler struct {
	Auth          *service.AuthService
	Sessions      *service.SessionService
	SecureCookies bool
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var creds possdk.Credentials
	if err := httpx.DecodeJSON(r, &creds); err != nil {
		possdk.ErrMissingFields.WriteError(w)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		possdk.ErrMissingFields.WriteError(w)
		return
	}

	user, err := h.Auth.VerifyCredentials(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			possdk.ErrBadCredentials.WriteError(w)
			return
		}
		log.Error("credential verification failed", "err", err)
		possdk.ErrServerError.WriteError(w)
		return
	}

	token, err := h.Sessions.Issue(user)
	if err != nil {
		log.Error("failed to sign session token", "user_id", user.ID, "err", err)
		possdk.ErrServerError.WriteError(w)
		return
	}

	httpx.SetSessionCookie(w, token, h.Sessions.TTL(), h.SecureCookies)

	log.Info("login succeeded", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, possdk.LoginResponse{
		Success: true,
		User:    safeUserPtr(user),
		Message: "Login successful",
	})
}
