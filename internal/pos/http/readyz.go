package http

import (
	"net/http"
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/service"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
)

// ReadyzHandler is the readiness probe. It pings the database and
// exercises the token signer so a misconfigured deployment is caught
// before traffic arrives.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	sessions *service.SessionService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &possdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if _, err := sessions.Tokens.Sign("readiness-probe", "", ""); err != nil {
			checks.Signer = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, possdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
