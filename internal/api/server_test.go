package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanclub/internal/common/cache"
	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/search"
	"fanclub/internal/store"
	"fanclub/internal/store/storetest"
)

// ==========================
// Test Helper Functions
// ==========================

type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T, checks map[string]ReadinessCheck) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ac := cache.NewAnalyticsCache(client, time.Minute)

	st := storetest.New(t, store.WithChangeHook(func(ctx context.Context, artistID string) {
		_ = ac.Invalidate(ctx, artistID)
	}))

	searcher := search.NewMemorySearcher(3)
	require.NoError(t, searcher.Index(context.Background(), st.ListArtists()))

	srv := NewServer(Options{
		Store:      st,
		Searcher:   searcher,
		Cache:      ac,
		Logger:     logger.NewTestLogger(t),
		MaxResults: 10,
		Checks:     checks,
	})
	srv.now = func() time.Time { return storetest.Now }

	return &testServer{handler: srv.Router()}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code errors.ErrorCode) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	var body errorBody
	decode(t, rec, &body)
	assert.Equal(t, string(code), body.Error.Code)
}

// ==========================
// Health & Readiness
// ==========================

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "2025-03-25T10:00:00Z", body["time"])
}

func TestReady(t *testing.T) {
	ts := newTestServer(t, map[string]ReadinessCheck{
		"redis": func(context.Context) error { return nil },
	})
	rec := ts.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts = newTestServer(t, map[string]ReadinessCheck{
		"redis":         func(context.Context) error { return nil },
		"elasticsearch": func(context.Context) error { return stderrors.New("connection refused") },
	})
	rec = ts.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "not ready", body.Status)
	assert.Equal(t, "ok", body.Services["redis"])
	assert.Equal(t, "connection refused", body.Services["elasticsearch"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.do(t, http.MethodGet, "/api/v1/me", "")

	rec := ts.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fanclub_http_requests_total")
}

// ==========================
// Session
// ==========================

func TestSession(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sess models.Session
	decode(t, rec, &sess)
	assert.Equal(t, models.ModeListener, sess.Mode)
	assert.Equal(t, "user-1", sess.CurrentUserID)

	rec = ts.do(t, http.MethodPut, "/api/v1/session", `{"mode":"artist","currentArtistId":"artist-2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &sess)
	assert.Equal(t, models.ModeArtist, sess.Mode)
	assert.Equal(t, "artist-2", sess.CurrentArtistID)

	rec = ts.do(t, http.MethodPut, "/api/v1/session", `{"mode":"dj"}`)
	assertErrorCode(t, rec, http.StatusBadRequest, errors.ErrCodeValidationFailed)

	rec = ts.do(t, http.MethodPut, "/api/v1/session", `{"currentArtistId":"artist-99"}`)
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeArtistNotFound)

	rec = ts.do(t, http.MethodPut, "/api/v1/session", `{"volume":11}`)
	assertErrorCode(t, rec, http.StatusBadRequest, errors.ErrCodeValidationFailed)
}

// ==========================
// Listener Routes
// ==========================

func TestMe(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decode(t, rec, &user)
	assert.Equal(t, "user-1", user.ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/me/artists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var artists []models.Artist
	decode(t, rec, &artists)
	require.Len(t, artists, 1)
	assert.Equal(t, "artist-1", artists[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/me/subscriptions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var subs []models.FanSubscription
	decode(t, rec, &subs)
	assert.Len(t, subs, 2)
}

func TestSubscriptionLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPut, "/api/v1/me/subscriptions/artist-3", `{"tierId":"tier-kofi-friend"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sub models.FanSubscription
	decode(t, rec, &sub)
	assert.Equal(t, "tier-kofi-friend", sub.TierID)
	assert.Equal(t, models.StatusActive, sub.Status)
	assert.Equal(t, "2025-03-25", sub.StartDate)

	rec = ts.do(t, http.MethodGet, "/api/v1/me/subscriptions/artist-3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/api/v1/me/subscriptions/artist-1", `{"tierId":"tier-luna-inner-circle"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &sub)
	assert.Equal(t, "tier-luna-inner-circle", sub.TierID)

	rec = ts.do(t, http.MethodDelete, "/api/v1/me/subscriptions/artist-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &sub)
	assert.Equal(t, models.StatusCanceled, sub.Status)

	rec = ts.do(t, http.MethodDelete, "/api/v1/me/subscriptions/artist-1", "")
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeSubscriptionNotFound)
}

func TestSubscribe_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.ErrorCode
	}{
		{"missing tier", "/api/v1/me/subscriptions/artist-1", `{}`, http.StatusBadRequest, errors.ErrCodeValidationFailed},
		{"malformed body", "/api/v1/me/subscriptions/artist-1", `{"tierId":`, http.StatusBadRequest, errors.ErrCodeValidationFailed},
		{"unknown artist", "/api/v1/me/subscriptions/artist-99", `{"tierId":"tier-luna-insider"}`, http.StatusNotFound, errors.ErrCodeArtistNotFound},
		{"unknown tier", "/api/v1/me/subscriptions/artist-1", `{"tierId":"tier-nope"}`, http.StatusNotFound, errors.ErrCodeTierNotFound},
		{"foreign tier", "/api/v1/me/subscriptions/artist-1", `{"tierId":"tier-kofi-friend"}`, http.StatusBadRequest, errors.ErrCodeTierArtistMismatch},
		{"disabled artist", "/api/v1/me/subscriptions/artist-4", `{"tierId":"tier-kofi-friend"}`, http.StatusConflict, errors.ErrCodeSubscriptionsDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			rec := ts.do(t, http.MethodPut, tt.path, tt.body)
			assertErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestSearchArtists(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/artists/?q=owls", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var artists []models.Artist
	decode(t, rec, &artists)
	require.Len(t, artists, 1)
	assert.Equal(t, "artist-2", artists[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/?q=lunna", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &artists)
	require.NotEmpty(t, artists)
	assert.Equal(t, "artist-1", artists[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &artists)
	assert.Len(t, artists, 1)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/?limit=zero", "")
	assertErrorCode(t, rec, http.StatusBadRequest, errors.ErrCodeValidationFailed)
}

func TestArtistAndTiers(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var artist models.Artist
	decode(t, rec, &artist)
	assert.Equal(t, "Luna Vega", artist.Name)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tiers []models.Tier
	decode(t, rec, &tiers)
	assert.Len(t, tiers, 3)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-99/tiers", "")
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeArtistNotFound)

	rec = ts.do(t, http.MethodGet, "/api/v1/tiers/tier-luna-insider/", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestContentAndAccess(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/content", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var views []models.ContentView
	decode(t, rec, &views)
	require.Len(t, views, 4)
	locked := map[string]bool{}
	for _, v := range views {
		locked[v.ID] = v.Locked
	}
	assert.True(t, locked["content-luna-merch"])
	assert.False(t, locked["content-luna-studio-clip"])

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/content?type=merch-code", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "content-luna-merch", views[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/content?type=hologram", "")
	assertErrorCode(t, rec, http.StatusBadRequest, errors.ErrCodeValidationFailed)

	rec = ts.do(t, http.MethodGet, "/api/v1/content/content-luna-playlist/access", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var access struct {
		ContentID string `json:"contentId"`
		HasAccess bool   `json:"hasAccess"`
	}
	decode(t, rec, &access)
	assert.True(t, access.HasAccess)

	rec = ts.do(t, http.MethodGet, "/api/v1/content/content-owls-pick/access", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &access)
	assert.False(t, access.HasAccess)

	rec = ts.do(t, http.MethodGet, "/api/v1/content/content-nope/access", "")
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeContentNotFound)
}

// ==========================
// Artist Routes
// ==========================

func TestTierManagement(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/artists/artist-1/tiers", `{"name":"Patron","priceMonthly":49.99}`)
	assertErrorCode(t, rec, http.StatusConflict, errors.ErrCodeTierLimitReached)

	rec = ts.do(t, http.MethodPost, "/api/v1/artists/artist-3/tiers", `{"name":"Backstage","priceMonthly":14.99,"features":["Soundcheck streams"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tier models.Tier
	decode(t, rec, &tier)
	assert.Equal(t, "tier-test-1", tier.ID)
	assert.Equal(t, "artist-3", tier.ArtistID)

	rec = ts.do(t, http.MethodPatch, "/api/v1/tiers/tier-test-1/", `{"priceMonthly":12.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &tier)
	assert.Equal(t, 12.5, tier.PriceMonthly)
	assert.Equal(t, "Backstage", tier.Name)

	rec = ts.do(t, http.MethodDelete, "/api/v1/tiers/tier-luna-insider/", "")
	assertErrorCode(t, rec, http.StatusConflict, errors.ErrCodeTierHasSubscribers)

	rec = ts.do(t, http.MethodDelete, "/api/v1/tiers/tier-test-1/", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/tiers/tier-test-1/", "")
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeTierNotFound)
}

func TestCreateTier_EmptyListsEncodeAsArrays(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/artists/artist-3/tiers", `{"name":"Solo","priceMonthly":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["features"]))
	assert.JSONEq(t, `[]`, string(raw["contentPreview"]))

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-3/tiers", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), `null`)
}

func TestCreateContent(t *testing.T) {
	ts := newTestServer(t, nil)

	body := `{"type":"clip","title":"Rehearsal cut","description":"Raw take","tierAccess":["tier-luna-inner-circle"]}`
	rec := ts.do(t, http.MethodPost, "/api/v1/artists/artist-1/content", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var content models.ExclusiveContent
	decode(t, rec, &content)
	assert.Equal(t, "artist-1", content.ArtistID)
	assert.Equal(t, "2025-03-25", content.CreatedAt)

	rec = ts.do(t, http.MethodPost, "/api/v1/artists/artist-1/content", `{"type":"hologram","title":"x","tierAccess":["tier-luna-insider"]}`)
	assertErrorCode(t, rec, http.StatusBadRequest, errors.ErrCodeValidationFailed)
}

func TestAnalytics(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var a models.ArtistAnalytics
	decode(t, rec, &a)
	assert.Equal(t, 3, a.TotalSubscribers)
	assert.InDelta(t, 39.97, a.MRR, 0.001)
	assert.InDelta(t, 25.0, a.ChurnRate, 0.001)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/analytics", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/analytics?refresh=true", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	// A subscription change drops the cached entry.
	ts.do(t, http.MethodDelete, "/api/v1/me/subscriptions/artist-1", "")
	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-1/analytics", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	decode(t, rec, &a)
	assert.Equal(t, 2, a.TotalSubscribers)

	rec = ts.do(t, http.MethodGet, "/api/v1/artists/artist-99/analytics", "")
	assertErrorCode(t, rec, http.StatusNotFound, errors.ErrCodeArtistNotFound)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(errors.ErrCodeUserNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(errors.ErrCodeSubscriptionsDisabled))
	assert.Equal(t, http.StatusBadRequest, StatusFor(errors.ErrCodeTierArtistMismatch))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.ErrCodeCacheFailed))
}
