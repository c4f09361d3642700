// Package cache keeps computed artist analytics in Redis.
package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/metrics"
	"fanclub/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "analytics:"

// AnalyticsCache is nil-safe: a nil cache (Redis disabled) always misses and
// ignores writes.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalyticsCache(client *redis.Client, ttl time.Duration) *AnalyticsCache {
	if client == nil {
		return nil
	}
	return &AnalyticsCache{client: client, ttl: ttl}
}

func Key(artistID string) string {
	return keyPrefix + artistID
}

// Get returns the cached analytics and whether there was a hit.
func (c *AnalyticsCache) Get(ctx context.Context, artistID string) (*models.ArtistAnalytics, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, Key(artistID)).Result()
	if stderrors.Is(err, redis.Nil) {
		metrics.AnalyticsCacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.AnalyticsCacheLookups.WithLabelValues("error").Inc()
		return nil, false, errors.NewCacheError(err)
	}

	var a models.ArtistAnalytics
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		metrics.AnalyticsCacheLookups.WithLabelValues("error").Inc()
		return nil, false, errors.NewCacheError(err)
	}
	metrics.AnalyticsCacheLookups.WithLabelValues("hit").Inc()
	return &a, true, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, a *models.ArtistAnalytics) error {
	if c == nil || a == nil {
		return nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return errors.NewCacheError(err)
	}
	if err := c.client.Set(ctx, Key(a.ArtistID), data, c.ttl).Err(); err != nil {
		return errors.NewCacheError(err)
	}
	return nil
}

func (c *AnalyticsCache) Invalidate(ctx context.Context, artistID string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, Key(artistID)).Err(); err != nil {
		return errors.NewCacheError(err)
	}
	return nil
}

// Source computes analytics on a cache miss.
type Source interface {
	GetAnalyticsForArtist(ctx context.Context, artistID string) (models.ArtistAnalytics, error)
}

// GetOrCompute serves artistID's analytics from the cache, computing and
// storing them on a miss. Cache failures are logged and never fail the call;
// refresh skips the lookup.
func (c *AnalyticsCache) GetOrCompute(ctx context.Context, src Source, artistID string, refresh bool, log logger.Logger) (*models.ArtistAnalytics, bool, error) {
	if !refresh {
		cached, hit, err := c.Get(ctx, artistID)
		if err != nil {
			log.Warn("analytics cache read failed", map[string]interface{}{"artistId": artistID, "error": err.Error()})
		} else if hit {
			return cached, true, nil
		}
	}

	a, err := src.GetAnalyticsForArtist(ctx, artistID)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, &a); err != nil {
		log.Warn("analytics cache write failed", map[string]interface{}{"artistId": artistID, "error": err.Error()})
	}
	return &a, false, nil
}
