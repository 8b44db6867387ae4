package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductDashboard/internal/auth"
	"ProductDashboard/pkg/kit"
)

const readyTimeout = 2 * time.Second

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// NewHandler wires the dashboard and its login pages into one router.
// Both servers must share the same session manager.
func NewHandler(s *Server, a *auth.Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(s, a, deps.Log))

	r.Group(func(pr chi.Router) {
		pr.Use(kit.NoStore)
		pr.Use(s.Sessions.Middleware)

		pr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			kit.SeeOther(w, r, auth.DashboardPath)
		})

		a.Mount(pr)

		pr.Get(auth.DashboardPath, s.ServeHTTP)
		pr.Post(auth.DashboardPath, s.ServeHTTP)
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if s.Metrics == nil {
		s.Metrics = NewMetrics(deps.Registry)
	}

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(s *Server, a *auth.Server, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		if err := a.Users.Ping(ctx); err != nil {
			log.Warn("readyz failed: users", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "users not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
