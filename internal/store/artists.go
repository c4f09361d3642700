package store

import (
	"fanclub/internal/common/errors"
	"fanclub/internal/models"
)

func (s *Store) GetArtistByID(artistID string) (models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.findArtist(artistID); ok {
		return s.artists[i].Clone(), nil
	}
	return models.Artist{}, errors.NewArtistNotFoundError(artistID)
}

// ListArtists returns every artist in catalog order.
func (s *Store) ListArtists() []models.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Artist, 0, len(s.artists))
	for _, a := range s.artists {
		out = append(out, a.Clone())
	}
	return out
}
