package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fanclub/internal/models"
)

func (s *Server) createTier(w http.ResponseWriter, r *http.Request) {
	var tier models.Tier
	if err := decodeJSON(w, r, &tier); err != nil {
		s.writeError(w, r, err)
		return
	}
	tier.ArtistID = chi.URLParam(r, "artistID")

	created, err := s.store.CreateTier(r.Context(), tier)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateTier(w http.ResponseWriter, r *http.Request) {
	var update models.TierUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.store.UpdateTier(r.Context(), chi.URLParam(r, "tierID"), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTier(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTier(r.Context(), chi.URLParam(r, "tierID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createContent(w http.ResponseWriter, r *http.Request) {
	var content models.ExclusiveContent
	if err := decodeJSON(w, r, &content); err != nil {
		s.writeError(w, r, err)
		return
	}
	content.ArtistID = chi.URLParam(r, "artistID")

	created, err := s.store.CreateContent(r.Context(), content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getAnalytics serves cached analytics unless ?refresh=true.
func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	a, cached, err := s.cache.GetOrCompute(r.Context(), s.store, chi.URLParam(r, "artistID"), refresh, s.logger)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, a)
}
