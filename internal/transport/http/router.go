// Package http assembles the chi router: middleware chain, health and
// metrics endpoints, and the session routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cabinet/internal/session/handler"
	"cabinet/pkg/platform/middleware/auth"
	"cabinet/pkg/platform/middleware/device"
	"cabinet/pkg/platform/middleware/requestid"
	"cabinet/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts.
type Deps struct {
	Session   *handler.Handler
	Validator auth.TokenValidator
	Registry  *prometheus.Registry
	Logger    *slog.Logger
}

// NewRouter builds the full router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(device.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Group(deps.Session.RegisterPublic)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuth(deps.Validator, deps.Logger))
		deps.Session.RegisterProtected(pr)
	})

	return r
}
