// Package catalog loads the seed snapshot that the in-memory store starts from.
package catalog

import (
	"fmt"
	"strings"

	"fanclub/internal/models"
)

// Snapshot is the full seed state. RevenueHistory is keyed by artist id.
type Snapshot struct {
	Users          []models.User                    `yaml:"users"`
	Artists        []models.Artist                  `yaml:"artists"`
	Tiers          []models.Tier                    `yaml:"tiers"`
	Subscriptions  []models.FanSubscription         `yaml:"subscriptions"`
	Content        []models.ExclusiveContent        `yaml:"content"`
	RevenueHistory map[string][]models.RevenuePoint `yaml:"revenueHistory"`
}

// Validate checks referential integrity and the per-artist tier limit.
// Every problem found is reported, not just the first.
func (s *Snapshot) Validate(maxTiersPerArtist int) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	users := make(map[string]bool, len(s.Users))
	for _, u := range s.Users {
		if u.ID == "" {
			add("user with empty id")
		} else if users[u.ID] {
			add("duplicate user id %q", u.ID)
		}
		users[u.ID] = true
	}

	artists := make(map[string]bool, len(s.Artists))
	for _, a := range s.Artists {
		if a.ID == "" {
			add("artist with empty id")
		} else if artists[a.ID] {
			add("duplicate artist id %q", a.ID)
		}
		artists[a.ID] = true
	}

	tierArtist := make(map[string]string, len(s.Tiers))
	tiersPerArtist := make(map[string]int)
	for _, t := range s.Tiers {
		if _, dup := tierArtist[t.ID]; dup {
			add("duplicate tier id %q", t.ID)
		}
		tierArtist[t.ID] = t.ArtistID
		if !artists[t.ArtistID] {
			add("tier %q references unknown artist %q", t.ID, t.ArtistID)
		}
		if !t.Highlight.Valid() {
			add("tier %q has invalid highlight %q", t.ID, t.Highlight)
		}
		tiersPerArtist[t.ArtistID]++
	}
	for artistID, n := range tiersPerArtist {
		if n > maxTiersPerArtist {
			add("artist %q has %d tiers, limit is %d", artistID, n, maxTiersPerArtist)
		}
	}

	pairs := make(map[string]bool, len(s.Subscriptions))
	for _, sub := range s.Subscriptions {
		key := sub.UserID + "/" + sub.ArtistID
		if pairs[key] {
			add("duplicate subscription for user %q and artist %q", sub.UserID, sub.ArtistID)
		}
		pairs[key] = true
		if !users[sub.UserID] {
			add("subscription references unknown user %q", sub.UserID)
		}
		if owner, ok := tierArtist[sub.TierID]; !ok || owner != sub.ArtistID {
			add("subscription %s references tier %q not offered by the artist", key, sub.TierID)
		}
		if sub.Status != models.StatusActive && sub.Status != models.StatusCanceled {
			add("subscription %s has invalid status %q", key, sub.Status)
		}
	}

	content := make(map[string]bool, len(s.Content))
	for _, c := range s.Content {
		if content[c.ID] {
			add("duplicate content id %q", c.ID)
		}
		content[c.ID] = true
		if !artists[c.ArtistID] {
			add("content %q references unknown artist %q", c.ID, c.ArtistID)
		}
		if !c.Type.Valid() {
			add("content %q has invalid type %q", c.ID, c.Type)
		}
		for _, tierID := range c.TierAccess {
			if tierArtist[tierID] != c.ArtistID {
				add("content %q grants tier %q not offered by artist %q", c.ID, tierID, c.ArtistID)
			}
		}
	}

	for artistID := range s.RevenueHistory {
		if !artists[artistID] {
			add("revenue history references unknown artist %q", artistID)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}
