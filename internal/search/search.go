// Package search finds artists by name for the listener search screen.
package search

import (
	"context"

	"fanclub/internal/models"
)

// Searcher is implemented by the in-memory and Elasticsearch backends.
type Searcher interface {
	// Index replaces the searchable artist set.
	Index(ctx context.Context, artists []models.Artist) error
	// Search returns up to limit artists matching query. An empty query
	// returns the artists that accept subscriptions.
	Search(ctx context.Context, query string, limit int) ([]models.Artist, error)
}

const DefaultLimit = 20

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
