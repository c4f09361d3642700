package fannotifysubscription

import (
	"fanclub/internal/models"
	"fanclub/internal/notify"
)

// Input matches the eventType and subscription variables the fan workers
// complete with.
type Input struct {
	EventType    models.SubscriptionEventType `json:"eventType"`
	Subscription *models.FanSubscription      `json:"subscription,omitempty"`
	UserID       string                       `json:"userId,omitempty"`
	ArtistID     string                       `json:"artistId,omitempty"`
	TierID       string                       `json:"tierId,omitempty"`
}

type Output struct {
	Notification notify.Result `json:"notification"`
}
