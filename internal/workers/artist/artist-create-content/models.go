package artistcreatecontent

import "fanclub/internal/models"

type Input struct {
	ArtistID     string             `json:"artistId"`
	Type         models.ContentType `json:"type"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	TierAccess   []string           `json:"tierAccess"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty"`
	Content      string             `json:"content,omitempty"`
}

type Output struct {
	Content models.ExclusiveContent `json:"content"`
	// EligibleSubscribers counts active fans whose tier unlocks the content.
	EligibleSubscribers int `json:"eligibleSubscribers"`
}
