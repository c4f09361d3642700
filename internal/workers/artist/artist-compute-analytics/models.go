package artistcomputeanalytics

import "fanclub/internal/models"

type Input struct {
	ArtistID string `json:"artistId"`
	Refresh  bool   `json:"refresh,omitempty"`
}

type Output struct {
	Analytics models.ArtistAnalytics `json:"analytics"`
	Cached    bool                   `json:"cached"`
}
