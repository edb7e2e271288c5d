package http

import (
	"errors"
	"net/http"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/service"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// MeHandler resolves the session cookie to the current user. Each
// failure mode maps to its own status and message; unauthenticated
// responses always carry an explicit null user.
type MeHandler struct {
	Sessions *service.SessionService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Sessions.ResolveRequest(ctx, r)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			writeMeError(w, possdk.ErrNotAuthenticated)
		case errors.Is(err, service.ErrInvalidToken):
			writeMeError(w, possdk.ErrInvalidToken)
		case errors.Is(err, service.ErrMalformedToken):
			writeMeError(w, possdk.ErrInvalidTokenPayload)
		case errors.Is(err, service.ErrUserNotFound):
			writeMeError(w, possdk.ErrUserNotFound)
		default:
			slogx.FromContext(ctx).Error("session resolution failed", "err", err)
			writeMeError(w, possdk.ErrServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, possdk.MeResponse{User: &user})
}

// writeMeError writes the error in the who-am-I envelope, which always
// includes user: null so clients can bind the response unconditionally.
func writeMeError(w http.ResponseWriter, apiErr *possdk.APIError) {
	httpx.WriteJSON(w, apiErr.StatusCode, possdk.MeResponse{
		User:  nil,
		Error: apiErr.Message,
	})
}

// safeUserPtr is a convenience for handlers returning a user pointer.
func safeUserPtr(u domain.User) *possdk.User {
	safe := service.SafeUser(u)
	return &safe
}
