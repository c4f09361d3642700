package store

import (
	"context"
	"fmt"

	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) Mode() models.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Mode
}

func (s *Store) SetMode(ctx context.Context, mode models.Mode) (err error) {
	_, span := s.startSpan(ctx, "SetMode", attribute.String("mode", string(mode)))
	defer func() { endSpan(span, err) }()

	if !mode.Valid() {
		return errors.NewValidationError(fmt.Sprintf("mode must be %q or %q, got %q", models.ModeListener, models.ModeArtist, mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Mode = mode
	return nil
}

// CurrentArtist returns the artist selected for the artist dashboard.
func (s *Store) CurrentArtist() (models.Artist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.findArtist(s.session.CurrentArtistID); ok {
		return s.artists[i].Clone(), true
	}
	return models.Artist{}, false
}

// SetCurrentArtist selects artistID; an empty id clears the selection.
func (s *Store) SetCurrentArtist(ctx context.Context, artistID string) (err error) {
	_, span := s.startSpan(ctx, "SetCurrentArtist", attribute.String("artistId", artistID))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if artistID != "" {
		if _, ok := s.findArtist(artistID); !ok {
			return errors.NewArtistNotFoundError(artistID)
		}
	}
	s.session.CurrentArtistID = artistID
	return nil
}

func (s *Store) CurrentUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, _ := s.findUser(s.session.CurrentUserID)
	return u
}

func (s *Store) GetUser(userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.findUser(userID); ok {
		return u, nil
	}
	return models.User{}, errors.NewUserNotFoundError(userID)
}
