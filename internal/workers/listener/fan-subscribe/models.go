package fansubscribe

import "fanclub/internal/models"

type Input struct {
	// UserID defaults to the signed-in user when empty.
	UserID   string `json:"userId,omitempty"`
	ArtistID string `json:"artistId"`
	TierID   string `json:"tierId"`
}

type Output struct {
	Subscription models.FanSubscription       `json:"subscription"`
	EventType    models.SubscriptionEventType `json:"eventType"`
}
