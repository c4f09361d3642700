// Package api exposes the store over a JSON HTTP API for the listener and
// artist screens, plus health, readiness and Prometheus endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fanclub/internal/common/cache"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/observability"
	"fanclub/internal/search"
	"fanclub/internal/store"
)

// ReadinessCheck reports whether a backing service is usable.
type ReadinessCheck func(ctx context.Context) error

type Options struct {
	Store    *store.Store
	Searcher search.Searcher
	Cache    *cache.AnalyticsCache
	Logger   logger.Logger
	// Observability is optional; nil disables request spans.
	Observability *observability.Observability
	MaxResults    int
	// Checks run on /ready keyed by service name.
	Checks map[string]ReadinessCheck
}

type Server struct {
	store      *store.Store
	searcher   search.Searcher
	cache      *cache.AnalyticsCache
	logger     logger.Logger
	obs        *observability.Observability
	maxResults int
	checks     map[string]ReadinessCheck
	now        func() time.Time
}

func NewServer(opts Options) *Server {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = search.DefaultLimit
	}
	return &Server{
		store:      opts.Store,
		searcher:   opts.Searcher,
		cache:      opts.Cache,
		logger:     opts.Logger.WithFields(map[string]interface{}{"component": "api"}),
		obs:        opts.Observability,
		maxResults: maxResults,
		checks:     opts.Checks,
		now:        time.Now,
	}
}

// Router builds the chi router serving every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/session", s.getSession)
		r.Put("/session", s.putSession)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", s.getMe)
			r.Get("/artists", s.getSubscribedArtists)
			r.Get("/subscriptions", s.listSubscriptions)
			r.Get("/subscriptions/{artistID}", s.getSubscription)
			r.Put("/subscriptions/{artistID}", s.subscribe)
			r.Patch("/subscriptions/{artistID}", s.changeTier)
			r.Delete("/subscriptions/{artistID}", s.cancelSubscription)
		})

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", s.searchArtists)
			r.Route("/{artistID}", func(r chi.Router) {
				r.Get("/", s.getArtist)
				r.Get("/tiers", s.listTiers)
				r.Post("/tiers", s.createTier)
				r.Get("/content", s.listContent)
				r.Post("/content", s.createContent)
				r.Get("/analytics", s.getAnalytics)
			})
		})

		r.Route("/tiers/{tierID}", func(r chi.Router) {
			r.Get("/", s.getTier)
			r.Patch("/", s.updateTier)
			r.Delete("/", s.deleteTier)
		})

		r.Get("/content/{contentID}/access", s.checkAccess)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	services := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		services[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status":   state,
		"services": services,
		"time":     s.now().Format(time.RFC3339),
	})
}
