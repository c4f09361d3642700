package api

import (
	"net/http"

	"fanclub/internal/models"
)

type sessionRequest struct {
	Mode            *models.Mode `json:"mode,omitempty"`
	CurrentArtistID *string      `json:"currentArtistId,omitempty"`
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Session())
}

// putSession switches mode and/or the selected artist. An empty
// currentArtistId clears the selection.
func (s *Server) putSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Mode != nil {
		if err := s.store.SetMode(r.Context(), *req.Mode); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.CurrentArtistID != nil {
		if err := s.store.SetCurrentArtist(r.Context(), *req.CurrentArtistID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.store.Session())
}
