package http

import (
	"net/http"
	"time"

	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
)

// LivezHandler is the liveness probe. It returns 200 whenever the
// process is serving requests.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, possdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
