package catalog

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"fanclub/internal/common/config"
	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fixtures
// ==========================

func TestLoadFixtures_Embedded(t *testing.T) {
	snap, err := LoadFixtures("")
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Users)
	assert.Equal(t, "user-1", snap.Users[0].ID)
	assert.Len(t, snap.Artists, 4)
	assert.NotEmpty(t, snap.Tiers)
	assert.NotEmpty(t, snap.Content)
	assert.Contains(t, snap.RevenueHistory, "artist-1")
	assert.NoError(t, snap.Validate(3))
}

func TestLoadFixtures_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := []byte(`
users:
  - {id: user-1, name: Test User, email: test@example.com}
artists:
  - {id: artist-1, name: Solo, subscriptionsEnabled: true}
tiers:
  - {id: tier-a, artistId: artist-1, name: Basic, priceMonthly: 2.5, highlight: Best Value}
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	snap, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, snap.Tiers, 1)
	assert.Equal(t, models.HighlightBestValue, snap.Tiers[0].Highlight)
	assert.Equal(t, 2.5, snap.Tiers[0].PriceMonthly)
	assert.NotNil(t, snap.RevenueHistory)
}

func TestLoadFixtures_Errors(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("users: [unterminated"))
	assert.Error(t, err)
}

// ==========================
// Validation
// ==========================

func validSnapshot() *Snapshot {
	return &Snapshot{
		Users:   []models.User{{ID: "user-1"}},
		Artists: []models.Artist{{ID: "artist-1"}, {ID: "artist-2"}},
		Tiers: []models.Tier{
			{ID: "t1", ArtistID: "artist-1", Name: "One", PriceMonthly: 1},
			{ID: "t2", ArtistID: "artist-2", Name: "Two", PriceMonthly: 2},
		},
		Subscriptions: []models.FanSubscription{
			{UserID: "user-1", ArtistID: "artist-1", TierID: "t1", Status: models.StatusActive, StartDate: "2025-01-01"},
		},
		Content: []models.ExclusiveContent{
			{ID: "c1", ArtistID: "artist-1", Type: models.ContentClip, Title: "Clip", TierAccess: []string{"t1"}},
		},
	}
}

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		wantErr string
	}{
		{name: "valid", mutate: func(s *Snapshot) {}},
		{
			name:    "duplicate artist",
			mutate:  func(s *Snapshot) { s.Artists = append(s.Artists, models.Artist{ID: "artist-1"}) },
			wantErr: `duplicate artist id "artist-1"`,
		},
		{
			name: "tier of unknown artist",
			mutate: func(s *Snapshot) {
				s.Tiers = append(s.Tiers, models.Tier{ID: "t9", ArtistID: "ghost"})
			},
			wantErr: `tier "t9" references unknown artist "ghost"`,
		},
		{
			name: "too many tiers",
			mutate: func(s *Snapshot) {
				s.Tiers = append(s.Tiers,
					models.Tier{ID: "t3", ArtistID: "artist-1"},
					models.Tier{ID: "t4", ArtistID: "artist-1"},
					models.Tier{ID: "t5", ArtistID: "artist-1"},
				)
			},
			wantErr: `artist "artist-1" has 4 tiers, limit is 3`,
		},
		{
			name:    "subscription to another artist's tier",
			mutate:  func(s *Snapshot) { s.Subscriptions[0].TierID = "t2" },
			wantErr: "not offered by the artist",
		},
		{
			name: "duplicate subscription pair",
			mutate: func(s *Snapshot) {
				s.Subscriptions = append(s.Subscriptions, s.Subscriptions[0])
			},
			wantErr: "duplicate subscription",
		},
		{
			name:    "content grants foreign tier",
			mutate:  func(s *Snapshot) { s.Content[0].TierAccess = []string{"t2"} },
			wantErr: `content "c1" grants tier "t2"`,
		},
		{
			name:    "invalid content type",
			mutate:  func(s *Snapshot) { s.Content[0].Type = "podcast" },
			wantErr: "invalid type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(snap)
			err := snap.Validate(3)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Postgres
// ==========================

func TestPostgresLoader_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryUsers)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "image_url"}).
			AddRow("user-1", "Alex", "alex@example.com", ""))

	mock.ExpectQuery(regexp.QuoteMeta(queryArtists)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "verified", "monthly_listeners", "image_url",
			"header_image_url", "subscriptions_enabled", "bio", "genre", "latest_album", "latest_album_date", "label", "members"}).
			AddRow("artist-1", "Band", true, int64(1200), "", "", true, "", "Rock", "", "", "", `{"Dee Carter","Tom Hale"}`))

	mock.ExpectQuery(regexp.QuoteMeta(queryTiers)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "artist_id", "name", "price_monthly", "tagline",
			"description", "features", "content_preview", "highlight"}).
			AddRow("tier-1", "artist-1", "Fan", 4.99, "", "", `{"Early access","Clips"}`,
				[]byte(`[{"type":"clip","title":"Soundcheck"}]`), "Most Popular"))

	mock.ExpectQuery(regexp.QuoteMeta(querySubscriptions)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "artist_id", "tier_id", "status", "start_date", "canceled_at"}).
			AddRow("user-1", "artist-1", "tier-1", "active", "2025-01-02", ""))

	mock.ExpectQuery(regexp.QuoteMeta(queryContent)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "artist_id", "type", "title", "description",
			"tier_access", "thumbnail_url", "created_at", "content"}).
			AddRow("content-1", "artist-1", "clip", "Soundcheck", "", `{"tier-1"}`, "", "2025-01-05", ""))

	mock.ExpectQuery(regexp.QuoteMeta(queryRevenue)).
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "month", "revenue"}).
			AddRow("artist-1", "2025-01", 4.99))

	snap, err := NewPostgresLoader(db).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Dee Carter", "Tom Hale"}, snap.Artists[0].Members)
	assert.Equal(t, []string{"Early access", "Clips"}, snap.Tiers[0].Features)
	assert.Equal(t, models.HighlightMostPopular, snap.Tiers[0].Highlight)
	require.Len(t, snap.Tiers[0].ContentPreview, 1)
	assert.Equal(t, models.PreviewClip, snap.Tiers[0].ContentPreview[0].Type)
	assert.Equal(t, models.StatusActive, snap.Subscriptions[0].Status)
	assert.Equal(t, []string{"tier-1"}, snap.Content[0].TierAccess)
	assert.Equal(t, 4.99, snap.RevenueHistory["artist-1"][0].Revenue)
	assert.NoError(t, snap.Validate(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoader_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryUsers)).WillReturnError(assert.AnError)

	_, err = NewPostgresLoader(db).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load users")
}

func TestLoad_PostgresWithoutDB(t *testing.T) {
	_, err := Load(context.Background(), config.CatalogConfig{Source: "postgres"}, nil, 3)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogLoadFailed))
}

func TestLoad_Fixtures(t *testing.T) {
	snap, err := Load(context.Background(), config.CatalogConfig{Source: "fixtures"}, nil, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Artists)

	_, err = Load(context.Background(), config.CatalogConfig{Source: "fixtures"}, nil, 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogLoadFailed))
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}
