package store

import (
	"context"
	"math"
	"strings"

	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

// GetAnalyticsForArtist derives the artist's subscription metrics from the
// current state. The revenue history is the seeded history with the current
// month set to the live MRR.
func (s *Store) GetAnalyticsForArtist(ctx context.Context, artistID string) (a models.ArtistAnalytics, err error) {
	_, span := s.startSpan(ctx, "GetAnalyticsForArtist", attribute.String("artistId", artistID))
	defer func() { endSpan(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.findArtist(artistID); !ok {
		return models.ArtistAnalytics{}, errors.NewArtistNotFoundError(artistID)
	}

	price := make(map[string]float64)
	a = models.ArtistAnalytics{ArtistID: artistID, SubscribersByTier: map[string]int{}}
	for _, t := range s.tiers {
		if t.ArtistID == artistID {
			price[t.ID] = t.PriceMonthly
			a.SubscribersByTier[t.ID] = 0
		}
	}

	month := s.now().Format("2006-01")
	for _, sub := range s.subscriptions {
		if sub.ArtistID != artistID {
			continue
		}
		switch sub.Status {
		case models.StatusActive:
			a.TotalSubscribers++
			a.SubscribersByTier[sub.TierID]++
			a.MRR += price[sub.TierID]
			if strings.HasPrefix(sub.StartDate, month) {
				a.NewSubscribersThisMonth++
			}
		case models.StatusCanceled:
			if strings.HasPrefix(sub.CanceledAt, month) {
				a.CanceledThisMonth++
			}
		}
	}
	a.MRR = round(a.MRR, 2)
	if denom := a.TotalSubscribers + a.CanceledThisMonth; denom > 0 {
		a.ChurnRate = round(float64(a.CanceledThisMonth)/float64(denom)*100, 1)
	}

	for _, p := range s.revenue[artistID] {
		if p.Month != month {
			a.RevenueHistory = append(a.RevenueHistory, p)
		}
	}
	a.RevenueHistory = append(a.RevenueHistory, models.RevenuePoint{Month: month, Revenue: a.MRR})
	return a, nil
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
