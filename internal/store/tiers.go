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

func (s *Store) GetTiersForArtist(artistID string) []models.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Tier{}
	for _, t := range s.tiers {
		if t.ArtistID == artistID {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) GetTierByID(tierID string) (models.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.findTier(tierID); ok {
		return s.tiers[i].Clone(), nil
	}
	return models.Tier{}, errors.NewTierNotFoundError(tierID)
}

// CreateTier adds a tier to tier.ArtistID. Any id on the input is ignored.
func (s *Store) CreateTier(ctx context.Context, tier models.Tier) (created models.Tier, err error) {
	ctx, span := s.startSpan(ctx, "CreateTier", attribute.String("artistId", tier.ArtistID))
	defer func() { endSpan(span, err) }()

	tier = normalizeTier(tier.Clone())
	if err := validateTier(tier); err != nil {
		return models.Tier{}, err
	}

	s.mu.Lock()
	if _, ok := s.findArtist(tier.ArtistID); !ok {
		s.mu.Unlock()
		return models.Tier{}, errors.NewArtistNotFoundError(tier.ArtistID)
	}
	count := 0
	for _, t := range s.tiers {
		if t.ArtistID == tier.ArtistID {
			count++
		}
	}
	if count >= s.maxTiers {
		s.mu.Unlock()
		return models.Tier{}, errors.NewTierLimitReachedError(tier.ArtistID, s.maxTiers)
	}
	tier.ID = "tier-" + s.newID()
	s.tiers = append(s.tiers, tier)
	s.mu.Unlock()

	metrics.TierEvents.WithLabelValues("create").Inc()
	s.notify(ctx, tier.ArtistID)
	return tier.Clone(), nil
}

// UpdateTier applies the non-nil fields of update. The id and owning artist
// never change.
func (s *Store) UpdateTier(ctx context.Context, tierID string, update models.TierUpdate) (updated models.Tier, err error) {
	ctx, span := s.startSpan(ctx, "UpdateTier", attribute.String("tierId", tierID))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	i, ok := s.findTier(tierID)
	if !ok {
		s.mu.Unlock()
		return models.Tier{}, errors.NewTierNotFoundError(tierID)
	}

	next := s.tiers[i].Clone()
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.PriceMonthly != nil {
		next.PriceMonthly = *update.PriceMonthly
	}
	if update.Tagline != nil {
		next.Tagline = *update.Tagline
	}
	if update.Description != nil {
		next.Description = *update.Description
	}
	if update.Features != nil {
		next.Features = append([]string(nil), update.Features...)
	}
	if update.ContentPreview != nil {
		next.ContentPreview = append([]models.ContentPreview(nil), update.ContentPreview...)
	}
	if update.Highlight != nil {
		next.Highlight = *update.Highlight
	}

	next = normalizeTier(next)
	if err := validateTier(next); err != nil {
		s.mu.Unlock()
		return models.Tier{}, err
	}
	s.tiers[i] = next
	s.mu.Unlock()

	metrics.TierEvents.WithLabelValues("update").Inc()
	s.notify(ctx, next.ArtistID)
	return next.Clone(), nil
}

// DeleteTier removes a tier nobody actively subscribes to and drops it from
// every content access list. Content that only this tier unlocks blocks the
// delete.
func (s *Store) DeleteTier(ctx context.Context, tierID string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteTier", attribute.String("tierId", tierID))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	i, ok := s.findTier(tierID)
	if !ok {
		s.mu.Unlock()
		return errors.NewTierNotFoundError(tierID)
	}
	active := 0
	for _, sub := range s.subscriptions {
		if sub.TierID == tierID && sub.IsActive() {
			active++
		}
	}
	if active > 0 {
		s.mu.Unlock()
		return errors.NewTierHasSubscribersError(tierID, active)
	}
	for _, c := range s.content {
		if len(c.TierAccess) == 1 && c.TierAccess[0] == tierID {
			s.mu.Unlock()
			return errors.NewTierGatesContentError(tierID, c.ID)
		}
	}

	artistID := s.tiers[i].ArtistID
	s.tiers = append(s.tiers[:i], s.tiers[i+1:]...)
	for ci := range s.content {
		kept := s.content[ci].TierAccess[:0]
		for _, id := range s.content[ci].TierAccess {
			if id != tierID {
				kept = append(kept, id)
			}
		}
		s.content[ci].TierAccess = kept
	}
	s.mu.Unlock()

	metrics.TierEvents.WithLabelValues("delete").Inc()
	s.notify(ctx, artistID)
	return nil
}

// normalizeTier trims text fields and drops blank features.
func normalizeTier(t models.Tier) models.Tier {
	t.Name = strings.TrimSpace(t.Name)
	t.Tagline = strings.TrimSpace(t.Tagline)
	t.Description = strings.TrimSpace(t.Description)

	features := make([]string, 0, len(t.Features))
	for _, f := range t.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	t.Features = features
	if t.ContentPreview == nil {
		t.ContentPreview = []models.ContentPreview{}
	}
	return t
}

func validateTier(t models.Tier) error {
	var problems []string
	if t.ArtistID == "" {
		problems = append(problems, "artistId is required")
	}
	if t.Name == "" {
		problems = append(problems, "name is required")
	}
	if t.PriceMonthly <= 0 {
		problems = append(problems, fmt.Sprintf("priceMonthly must be positive, got %.2f", t.PriceMonthly))
	}
	if !t.Highlight.Valid() {
		problems = append(problems, fmt.Sprintf("highlight %q is not one of %q, %q", t.Highlight, models.HighlightMostPopular, models.HighlightBestValue))
	}
	for _, p := range t.ContentPreview {
		if !p.Type.Valid() {
			problems = append(problems, fmt.Sprintf("contentPreview type %q is invalid", p.Type))
		}
	}
	if len(problems) > 0 {
		return errors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
