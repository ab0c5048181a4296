// Route registration and go-chi router setup.
// Public demo surface (/, /health, /api/tools, /api/execute, /api/invocations)
// plus an optionally JWT-protected admin surface (/auth/token, /api/reload).
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmaidana/toolrelay/internal/api/handlers"
	apmiddleware "github.com/dmaidana/toolrelay/internal/api/middleware"
	"github.com/dmaidana/toolrelay/internal/domain/journal"
	"github.com/dmaidana/toolrelay/internal/domain/tool"
	"github.com/dmaidana/toolrelay/internal/infra/config"
)

// Deps carries everything the router needs; the server builds it once at boot.
type Deps struct {
	Store   *tool.Store
	Relay   *tool.Relay
	Journal *journal.Store // nil when no db_path is configured
	Reload  handlers.ReloadFunc
	Auth    config.Auth
}

// NewRouter creates and configures a chi router with all routes.
// When Auth.AdminTokenHash is empty the admin surface stays open — this is a
// demo harness, local single-user use is the default.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check — unauthenticated, used by load balancers and health probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	uiHandler := handlers.NewUIHandler()
	r.Get("/", uiHandler.Index)

	toolsHandler := handlers.NewToolsHandler(deps.Store)
	executeHandler := handlers.NewExecuteHandler(deps.Relay)
	invocationsHandler := handlers.NewInvocationsHandler(deps.Journal)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tools", toolsHandler.List)             // GET  /api/tools
		r.Post("/execute", executeHandler.Execute)     // POST /api/execute
		r.Get("/invocations", invocationsHandler.List) // GET  /api/invocations

		if deps.Reload != nil {
			reloadHandler := handlers.NewReloadHandler(deps.Reload)
			r.Group(func(r chi.Router) {
				if deps.Auth.AdminTokenHash != "" {
					r.Use(apmiddleware.RequireAdmin([]byte(deps.Auth.Secret)))
				}
				r.Post("/reload", reloadHandler.Reload) // POST /api/reload
			})
		}
	})

	// Token exchange only makes sense when an admin token is configured.
	if deps.Auth.AdminTokenHash != "" {
		tokenHandler := handlers.NewTokenHandler(deps.Auth)
		r.Post("/auth/token", tokenHandler.Issue) // POST /auth/token
	}

	return r
}
