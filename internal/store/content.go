package store

import (
	"context"
	"fmt"
	"strings"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/metrics"
	"fanclub/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

// GetContentForArtist lists the artist's content, optionally narrowed to one
// type. An empty type means all.
func (s *Store) GetContentForArtist(artistID string, typ models.ContentType) []models.ExclusiveContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ExclusiveContent{}
	for _, c := range s.content {
		if c.ArtistID == artistID && (typ == "" || c.Type == typ) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *Store) GetContentByID(contentID string) (models.ExclusiveContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.content {
		if c.ID == contentID {
			return c.Clone(), nil
		}
	}
	return models.ExclusiveContent{}, errors.NewContentNotFoundError(contentID)
}

// CanAccessContent reports whether userID holds an active subscription whose
// tier is in the content's access list.
func (s *Store) CanAccessContent(userID, contentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.content {
		if c.ID != contentID {
			continue
		}
		sub, ok := s.activeSubscription(userID, c.ArtistID)
		return ok && c.GrantsTier(sub.TierID), nil
	}
	return false, errors.NewContentNotFoundError(contentID)
}

// GetAccessibleContent lists the artist's content unlocked for userID.
func (s *Store) GetAccessibleContent(userID, artistID string) []models.ExclusiveContent {
	return s.partitionContent(userID, artistID, true)
}

// GetLockedContent is the complement of GetAccessibleContent.
func (s *Store) GetLockedContent(userID, artistID string) []models.ExclusiveContent {
	return s.partitionContent(userID, artistID, false)
}

// ContentViews lists all of the artist's content with a per-item lock flag.
func (s *Store) ContentViews(userID, artistID string) []models.ContentView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, subscribed := s.activeSubscription(userID, artistID)
	out := []models.ContentView{}
	for _, c := range s.content {
		if c.ArtistID != artistID {
			continue
		}
		out = append(out, models.ContentView{
			ExclusiveContent: c.Clone(),
			Locked:           !(subscribed && c.GrantsTier(sub.TierID)),
		})
	}
	return out
}

func (s *Store) partitionContent(userID, artistID string, unlocked bool) []models.ExclusiveContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, subscribed := s.activeSubscription(userID, artistID)
	out := []models.ExclusiveContent{}
	for _, c := range s.content {
		if c.ArtistID != artistID {
			continue
		}
		if (subscribed && c.GrantsTier(sub.TierID)) == unlocked {
			out = append(out, c.Clone())
		}
	}
	return out
}

// CreateContent publishes content for c.ArtistID. The id and creation date
// are assigned here.
func (s *Store) CreateContent(ctx context.Context, c models.ExclusiveContent) (created models.ExclusiveContent, err error) {
	ctx, span := s.startSpan(ctx, "CreateContent",
		attribute.String("artistId", c.ArtistID),
		attribute.String("type", string(c.Type)),
	)
	defer func() { endSpan(span, err) }()

	c = c.Clone()
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Content = strings.TrimSpace(c.Content)
	c.TierAccess = dedupe(c.TierAccess)

	var problems []string
	if !c.Type.Valid() {
		problems = append(problems, fmt.Sprintf("type %q is invalid", c.Type))
	}
	if c.Title == "" {
		problems = append(problems, "title is required")
	}
	if len(c.TierAccess) == 0 {
		problems = append(problems, "at least one tier must have access")
	}
	if c.Type == models.ContentMerchCode && c.Content == "" {
		problems = append(problems, "merch-code content requires a code")
	}
	if len(problems) > 0 {
		return models.ExclusiveContent{}, errors.NewValidationError(strings.Join(problems, "; "))
	}

	s.mu.Lock()
	if _, ok := s.findArtist(c.ArtistID); !ok {
		s.mu.Unlock()
		return models.ExclusiveContent{}, errors.NewArtistNotFoundError(c.ArtistID)
	}
	for _, tierID := range c.TierAccess {
		if err := s.checkTierOwner(tierID, c.ArtistID); err != nil {
			s.mu.Unlock()
			return models.ExclusiveContent{}, err
		}
	}
	c.ID = "content-" + s.newID()
	c.CreatedAt = s.today()
	s.content = append(s.content, c)
	s.mu.Unlock()

	metrics.ContentCreated.WithLabelValues(string(c.Type)).Inc()
	return c.Clone(), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
