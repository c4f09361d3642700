package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fanclub/internal/common/errors"
	"fanclub/internal/models"
)

type tierRequest struct {
	TierID string `json:"tierId"`
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.CurrentUser())
}

func (s *Server) getSubscribedArtists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetSubscribedArtists(s.store.CurrentUser().ID))
}

// listSubscriptions includes canceled subscriptions.
func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListSubscriptions(s.store.CurrentUser().ID))
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.GetSubscription(s.store.CurrentUser().ID, chi.URLParam(r, "artistID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req tierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.TierID == "" {
		s.writeError(w, r, errors.NewValidationError("tierId is required"))
		return
	}
	sub, err := s.store.Subscribe(r.Context(), s.store.CurrentUser().ID, chi.URLParam(r, "artistID"), req.TierID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) changeTier(w http.ResponseWriter, r *http.Request) {
	var req tierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.TierID == "" {
		s.writeError(w, r, errors.NewValidationError("tierId is required"))
		return
	}
	sub, _, err := s.store.ChangeTier(r.Context(), s.store.CurrentUser().ID, chi.URLParam(r, "artistID"), req.TierID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.CancelSubscription(r.Context(), s.store.CurrentUser().ID, chi.URLParam(r, "artistID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// searchArtists serves ?q=&limit=. Without q it lists every artist that
// accepts subscriptions.
func (s *Server) searchArtists(w http.ResponseWriter, r *http.Request) {
	limit := s.maxResults
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		if n < limit {
			limit = n
		}
	}

	artists, err := s.searcher.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) getArtist(w http.ResponseWriter, r *http.Request) {
	artist, err := s.store.GetArtistByID(chi.URLParam(r, "artistID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) listTiers(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistID")
	if _, err := s.store.GetArtistByID(artistID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.GetTiersForArtist(artistID))
}

func (s *Server) getTier(w http.ResponseWriter, r *http.Request) {
	tier, err := s.store.GetTierByID(chi.URLParam(r, "tierID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tier)
}

// listContent returns the artist's content with a locked flag for the
// signed-in user, optionally filtered by ?type=.
func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistID")
	if _, err := s.store.GetArtistByID(artistID); err != nil {
		s.writeError(w, r, err)
		return
	}

	typ := models.ContentType(r.URL.Query().Get("type"))
	if typ != "" && !typ.Valid() {
		s.writeError(w, r, errors.NewValidationError("unknown content type "+string(typ)))
		return
	}

	views := s.store.ContentViews(s.store.CurrentUser().ID, artistID)
	if typ != "" {
		filtered := views[:0]
		for _, v := range views {
			if v.Type == typ {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) checkAccess(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	ok, err := s.store.CanAccessContent(s.store.CurrentUser().ID, contentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contentId": contentID,
		"hasAccess": ok,
	})
}
