package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shuttleworks/smashpos/internal/pos/service"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	secureCookies bool
	startTime     time.Time
	logger        *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	UserService      *service.UserService
	BootstrapService *service.BootstrapService
}

// NewRouter builds a Router with the default middleware chain.
// secureCookies should be true in production so the session cookie is
// only sent over TLS.
func NewRouter(
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		secureCookies: secureCookies,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every endpoint on the mux.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{
		Auth:          r.AuthService,
		Sessions:      r.SessionService,
		SecureCookies: r.secureCookies,
	}
	r.Mux.Handle("POST /api/auth/login", loginHandler)

	// The who-am-I handler resolves the session itself rather than going
	// through the authn middleware: its error responses distinguish cases
	// the middleware deliberately flattens to a single 401.
	meHandler := &MeHandler{Sessions: r.SessionService}
	r.Mux.Handle("GET /api/auth/me", meHandler)

	logoutHandler := &LogoutHandler{SecureCookies: r.secureCookies}
	r.Mux.Handle("POST /api/auth/logout", logoutHandler)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	secured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.SessionMiddleware(httpx.ResolverFunc(r.SessionService.ResolveIdentity)),
			httpx.RequireAdmin(),
		)
	}

	r.Mux.Handle("GET /api/users", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/users", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/users", secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/users", secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.SessionService))
}
