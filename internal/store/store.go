// Package store holds the shared application state: the catalog snapshot
// plus every mutation made since start-up. Nothing is written back to the
// catalog source; a restart resets to the seed.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fanclub/internal/catalog"
	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultMaxTiersPerArtist = 3

// ChangeHook is called after a mutation that can alter an artist's
// analytics, outside the store lock.
type ChangeHook func(ctx context.Context, artistID string)

type Store struct {
	mu sync.RWMutex

	maxTiers int
	now      func() time.Time
	newID    func() string
	tracer   trace.Tracer
	hooks    []ChangeHook

	session       models.Session
	users         []models.User
	artists       []models.Artist
	tiers         []models.Tier
	subscriptions []models.FanSubscription
	content       []models.ExclusiveContent
	revenue       map[string][]models.RevenuePoint
}

type Option func(*Store)

func WithMaxTiersPerArtist(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxTiers = n
		}
	}
}

// WithClock overrides the time source used for start, cancel and creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithChangeHook(hook ChangeHook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, hook) }
}

// New seeds a store from snap. The session starts in listener mode with the
// first artist selected, signed in as currentUserID.
func New(snap *catalog.Snapshot, currentUserID string, opts ...Option) (*Store, error) {
	if snap == nil {
		return nil, fmt.Errorf("store: nil catalog snapshot")
	}

	s := &Store{
		maxTiers: DefaultMaxTiersPerArtist,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		tracer:   otel.Tracer("fanclub/store"),
		revenue:  make(map[string][]models.RevenuePoint, len(snap.RevenueHistory)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.users = append([]models.User(nil), snap.Users...)
	for _, a := range snap.Artists {
		s.artists = append(s.artists, a.Clone())
	}
	for _, t := range snap.Tiers {
		s.tiers = append(s.tiers, t.Clone())
	}
	s.subscriptions = append([]models.FanSubscription(nil), snap.Subscriptions...)
	for _, c := range snap.Content {
		s.content = append(s.content, c.Clone())
	}
	for artistID, points := range snap.RevenueHistory {
		s.revenue[artistID] = append([]models.RevenuePoint(nil), points...)
	}

	if _, ok := s.findUser(currentUserID); !ok {
		return nil, errors.NewUserNotFoundError(currentUserID)
	}
	s.session = models.Session{Mode: models.ModeListener, CurrentUserID: currentUserID}
	if len(s.artists) > 0 {
		s.session.CurrentArtistID = s.artists[0].ID
	}
	return s, nil
}

func (s *Store) MaxTiersPerArtist() int {
	return s.maxTiers
}

func (s *Store) today() string {
	return s.now().Format(models.DateLayout)
}

func (s *Store) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "store."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Store) notify(ctx context.Context, artistID string) {
	for _, hook := range s.hooks {
		hook(ctx, artistID)
	}
}

// --- lookups; callers hold the lock ---

func (s *Store) findUser(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) findArtist(id string) (int, bool) {
	for i := range s.artists {
		if s.artists[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) findTier(id string) (int, bool) {
	for i := range s.tiers {
		if s.tiers[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) findSubscription(userID, artistID string) (int, bool) {
	for i := range s.subscriptions {
		if s.subscriptions[i].UserID == userID && s.subscriptions[i].ArtistID == artistID {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) activeSubscription(userID, artistID string) (models.FanSubscription, bool) {
	if i, ok := s.findSubscription(userID, artistID); ok && s.subscriptions[i].IsActive() {
		return s.subscriptions[i], true
	}
	return models.FanSubscription{}, false
}
