package store

import (
	"context"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/metrics"
	"fanclub/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

// Subscribe puts userID on tierID of artistID. An existing record for the
// pair, active or canceled, is reused: it moves to the new tier and becomes
// active again. A canceled record restarts its start date.
func (s *Store) Subscribe(ctx context.Context, userID, artistID, tierID string) (sub models.FanSubscription, err error) {
	ctx, span := s.startSpan(ctx, "Subscribe",
		attribute.String("userId", userID),
		attribute.String("artistId", artistID),
		attribute.String("tierId", tierID),
	)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	event := "subscribed"
	sub, err = func() (models.FanSubscription, error) {
		if _, ok := s.findUser(userID); !ok {
			return models.FanSubscription{}, errors.NewUserNotFoundError(userID)
		}
		ai, ok := s.findArtist(artistID)
		if !ok {
			return models.FanSubscription{}, errors.NewArtistNotFoundError(artistID)
		}
		if !s.artists[ai].SubscriptionsEnabled {
			return models.FanSubscription{}, errors.NewSubscriptionsDisabledError(artistID)
		}
		if err := s.checkTierOwner(tierID, artistID); err != nil {
			return models.FanSubscription{}, err
		}

		today := s.today()
		if i, ok := s.findSubscription(userID, artistID); ok {
			existing := &s.subscriptions[i]
			if !existing.IsActive() {
				existing.StartDate = today
				event = "resubscribed"
			}
			existing.TierID = tierID
			existing.Status = models.StatusActive
			existing.CanceledAt = ""
			return *existing, nil
		}

		created := models.FanSubscription{
			UserID:    userID,
			ArtistID:  artistID,
			TierID:    tierID,
			Status:    models.StatusActive,
			StartDate: today,
		}
		s.subscriptions = append(s.subscriptions, created)
		return created, nil
	}()
	s.mu.Unlock()

	if err != nil {
		return models.FanSubscription{}, err
	}
	metrics.SubscriptionEvents.WithLabelValues(event).Inc()
	s.notify(ctx, artistID)
	return sub, nil
}

// CancelSubscription cancels the user's active subscription to artistID.
func (s *Store) CancelSubscription(ctx context.Context, userID, artistID string) (sub models.FanSubscription, err error) {
	ctx, span := s.startSpan(ctx, "CancelSubscription",
		attribute.String("userId", userID),
		attribute.String("artistId", artistID),
	)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	i, ok := s.findSubscription(userID, artistID)
	if !ok || !s.subscriptions[i].IsActive() {
		s.mu.Unlock()
		return models.FanSubscription{}, errors.NewSubscriptionNotFoundError(userID, artistID)
	}
	s.subscriptions[i].Status = models.StatusCanceled
	s.subscriptions[i].CanceledAt = s.today()
	sub = s.subscriptions[i]
	s.mu.Unlock()

	metrics.SubscriptionEvents.WithLabelValues("canceled").Inc()
	s.notify(ctx, artistID)
	return sub, nil
}

// ChangeTier moves an active subscription to another tier of the same
// artist and returns the tier it held before. Moving to the current tier
// succeeds without a change.
func (s *Store) ChangeTier(ctx context.Context, userID, artistID, newTierID string) (sub models.FanSubscription, previousTierID string, err error) {
	ctx, span := s.startSpan(ctx, "ChangeTier",
		attribute.String("userId", userID),
		attribute.String("artistId", artistID),
		attribute.String("tierId", newTierID),
	)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	i, ok := s.findSubscription(userID, artistID)
	if !ok || !s.subscriptions[i].IsActive() {
		s.mu.Unlock()
		return models.FanSubscription{}, "", errors.NewSubscriptionNotFoundError(userID, artistID)
	}
	if err := s.checkTierOwner(newTierID, artistID); err != nil {
		s.mu.Unlock()
		return models.FanSubscription{}, "", err
	}
	previousTierID = s.subscriptions[i].TierID
	changed := previousTierID != newTierID
	s.subscriptions[i].TierID = newTierID
	sub = s.subscriptions[i]
	s.mu.Unlock()

	if changed {
		metrics.SubscriptionEvents.WithLabelValues("tier_changed").Inc()
		s.notify(ctx, artistID)
	}
	return sub, previousTierID, nil
}

// GetSubscription returns the user's active subscription to artistID.
func (s *Store) GetSubscription(userID, artistID string) (models.FanSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.activeSubscription(userID, artistID); ok {
		return sub, nil
	}
	return models.FanSubscription{}, errors.NewSubscriptionNotFoundError(userID, artistID)
}

// GetSubscribedArtists lists artists the user actively subscribes to, in
// catalog order.
func (s *Store) GetSubscribedArtists(userID string) []models.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscribed := make(map[string]bool)
	for _, sub := range s.subscriptions {
		if sub.UserID == userID && sub.IsActive() {
			subscribed[sub.ArtistID] = true
		}
	}
	out := []models.Artist{}
	for _, a := range s.artists {
		if subscribed[a.ID] {
			out = append(out, a.Clone())
		}
	}
	return out
}

// ListSubscriptions returns all of the user's subscriptions, canceled ones
// included.
func (s *Store) ListSubscriptions(userID string) []models.FanSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.FanSubscription{}
	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out
}

// ListSubscribers returns every subscription to artistID.
func (s *Store) ListSubscribers(artistID string) []models.FanSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.FanSubscription{}
	for _, sub := range s.subscriptions {
		if sub.ArtistID == artistID {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Store) checkTierOwner(tierID, artistID string) error {
	ti, ok := s.findTier(tierID)
	if !ok {
		return errors.NewTierNotFoundError(tierID)
	}
	if s.tiers[ti].ArtistID != artistID {
		return errors.NewTierArtistMismatchError(tierID, artistID)
	}
	return nil
}
