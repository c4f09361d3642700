package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fanclub/internal/models"

	"github.com/agnivade/levenshtein"
)

// MemorySearcher matches a case-insensitive substring of the artist name.
// When nothing contains the query, names (or single words of names) within a
// small edit distance are returned instead, closest first.
type MemorySearcher struct {
	mu          sync.RWMutex
	artists     []models.Artist
	fuzzyMinLen int
}

func NewMemorySearcher(fuzzyMinLen int) *MemorySearcher {
	if fuzzyMinLen <= 0 {
		fuzzyMinLen = 3
	}
	return &MemorySearcher{fuzzyMinLen: fuzzyMinLen}
}

func (m *MemorySearcher) Index(_ context.Context, artists []models.Artist) error {
	copied := make([]models.Artist, 0, len(artists))
	for _, a := range artists {
		copied = append(copied, a.Clone())
	}
	m.mu.Lock()
	m.artists = copied
	m.mu.Unlock()
	return nil
}

func (m *MemorySearcher) Search(ctx context.Context, query string, limit int) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit)
	q := strings.ToLower(strings.TrimSpace(query))

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Artist{}
	if q == "" {
		for _, a := range m.artists {
			if a.SubscriptionsEnabled {
				out = append(out, a.Clone())
			}
		}
		return truncate(out, limit), nil
	}

	for _, a := range m.artists {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a.Clone())
		}
	}
	if len(out) > 0 || len([]rune(q)) < m.fuzzyMinLen {
		return truncate(out, limit), nil
	}

	return truncate(m.fuzzy(q), limit), nil
}

type scored struct {
	artist   models.Artist
	distance int
	order    int
}

func (m *MemorySearcher) fuzzy(q string) []models.Artist {
	maxDist := len([]rune(q)) / 4
	if maxDist < 1 {
		maxDist = 1
	}

	var matches []scored
	for i, a := range m.artists {
		name := strings.ToLower(a.Name)
		best := levenshtein.ComputeDistance(q, name)
		for _, word := range strings.Fields(name) {
			if d := levenshtein.ComputeDistance(q, word); d < best {
				best = d
			}
		}
		if best <= maxDist {
			matches = append(matches, scored{artist: a, distance: best, order: i})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].order < matches[j].order
	})

	out := make([]models.Artist, 0, len(matches))
	for _, s := range matches {
		out = append(out, s.artist.Clone())
	}
	return out
}

func truncate(artists []models.Artist, limit int) []models.Artist {
	if len(artists) > limit {
		return artists[:limit]
	}
	return artists
}
