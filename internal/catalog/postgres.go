package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fanclub/internal/models"

	"github.com/lib/pq"
)

const (
	queryUsers = `SELECT id, name, email, image_url FROM users ORDER BY id`

	queryArtists = `SELECT id, name, verified, monthly_listeners, image_url, header_image_url,
		subscriptions_enabled, bio, genre, latest_album, latest_album_date, label, members
		FROM artists ORDER BY position, id`

	queryTiers = `SELECT id, artist_id, name, price_monthly, tagline, description, features,
		content_preview, highlight
		FROM tiers ORDER BY artist_id, position, id`

	querySubscriptions = `SELECT user_id, artist_id, tier_id, status,
		to_char(start_date, 'YYYY-MM-DD'), COALESCE(to_char(canceled_at, 'YYYY-MM-DD'), '')
		FROM subscriptions ORDER BY start_date, user_id`

	queryContent = `SELECT id, artist_id, type, title, description, tier_access, thumbnail_url,
		to_char(created_at, 'YYYY-MM-DD'), content
		FROM exclusive_content ORDER BY created_at DESC, id`

	queryRevenue = `SELECT artist_id, month, revenue FROM revenue_history ORDER BY artist_id, month`
)

// PostgresLoader reads a Snapshot from the catalog tables. It never writes:
// store mutations stay in memory.
type PostgresLoader struct {
	db *sql.DB
}

func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

func (l *PostgresLoader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{RevenueHistory: map[string][]models.RevenuePoint{}}

	steps := []struct {
		name string
		fn   func(context.Context, *Snapshot) error
	}{
		{"users", l.loadUsers},
		{"artists", l.loadArtists},
		{"tiers", l.loadTiers},
		{"subscriptions", l.loadSubscriptions},
		{"content", l.loadContent},
		{"revenue", l.loadRevenue},
	}
	for _, step := range steps {
		if err := step.fn(ctx, snap); err != nil {
			return nil, fmt.Errorf("load %s: %w", step.name, err)
		}
	}
	return snap, nil
}

func (l *PostgresLoader) loadUsers(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, queryUsers)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ImageURL); err != nil {
			return err
		}
		snap.Users = append(snap.Users, u)
	}
	return rows.Err()
}

func (l *PostgresLoader) loadArtists(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, queryArtists)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Verified, &a.MonthlyListeners, &a.ImageURL,
			&a.HeaderImageURL, &a.SubscriptionsEnabled, &a.Bio, &a.Genre, &a.LatestAlbum,
			&a.LatestAlbumDate, &a.Label, pq.Array(&a.Members)); err != nil {
			return err
		}
		snap.Artists = append(snap.Artists, a)
	}
	return rows.Err()
}

func (l *PostgresLoader) loadTiers(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, queryTiers)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t         models.Tier
			preview   []byte
			highlight string
		)
		if err := rows.Scan(&t.ID, &t.ArtistID, &t.Name, &t.PriceMonthly, &t.Tagline,
			&t.Description, pq.Array(&t.Features), &preview, &highlight); err != nil {
			return err
		}
		if len(preview) > 0 {
			if err := json.Unmarshal(preview, &t.ContentPreview); err != nil {
				return fmt.Errorf("tier %s content_preview: %w", t.ID, err)
			}
		}
		t.Highlight = models.Highlight(highlight)
		snap.Tiers = append(snap.Tiers, t)
	}
	return rows.Err()
}

func (l *PostgresLoader) loadSubscriptions(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, querySubscriptions)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s      models.FanSubscription
			status string
		)
		if err := rows.Scan(&s.UserID, &s.ArtistID, &s.TierID, &status, &s.StartDate, &s.CanceledAt); err != nil {
			return err
		}
		s.Status = models.SubscriptionStatus(status)
		snap.Subscriptions = append(snap.Subscriptions, s)
	}
	return rows.Err()
}

func (l *PostgresLoader) loadContent(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, queryContent)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c   models.ExclusiveContent
			typ string
		)
		if err := rows.Scan(&c.ID, &c.ArtistID, &typ, &c.Title, &c.Description,
			pq.Array(&c.TierAccess), &c.ThumbnailURL, &c.CreatedAt, &c.Content); err != nil {
			return err
		}
		c.Type = models.ContentType(typ)
		snap.Content = append(snap.Content, c)
	}
	return rows.Err()
}

func (l *PostgresLoader) loadRevenue(ctx context.Context, snap *Snapshot) error {
	rows, err := l.db.QueryContext(ctx, queryRevenue)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			artistID string
			point    models.RevenuePoint
		)
		if err := rows.Scan(&artistID, &point.Month, &point.Revenue); err != nil {
			return err
		}
		snap.RevenueHistory[artistID] = append(snap.RevenueHistory[artistID], point)
	}
	return rows.Err()
}
