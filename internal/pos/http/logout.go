package http

import (
	"net/http"

	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
)

// LogoutHandler clears the session cookie. There is no server-side
// session state, so expiring the cookie is the whole operation.
type LogoutHandler struct {
	SecureCookies bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, possdk.MessageResponse{
		Success: true,
		Message: "Logout successful",
	})
}
