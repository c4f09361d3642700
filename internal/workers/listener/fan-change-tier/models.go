package fanchangetier

import "fanclub/internal/models"

type Input struct {
	UserID    string `json:"userId,omitempty"`
	ArtistID  string `json:"artistId"`
	NewTierID string `json:"newTierId"`
}

type Output struct {
	Subscription   models.FanSubscription       `json:"subscription"`
	PreviousTierID string                       `json:"previousTierId"`
	Changed        bool                         `json:"changed"`
	EventType      models.SubscriptionEventType `json:"eventType,omitempty"`
}
