package models

type SubscriptionEventType string

const (
	EventSubscribed  SubscriptionEventType = "subscribed"
	EventTierChanged SubscriptionEventType = "tier_changed"
	EventCanceled    SubscriptionEventType = "canceled"
)

func (e SubscriptionEventType) Valid() bool {
	switch e {
	case EventSubscribed, EventTierChanged, EventCanceled:
		return true
	}
	return false
}

// SubscriptionEvent is what the notifier emails to the fan and publishes
// to the events topic.
type SubscriptionEvent struct {
	Type       SubscriptionEventType `json:"type"`
	UserID     string                `json:"userId"`
	UserName   string                `json:"userName,omitempty"`
	UserEmail  string                `json:"userEmail,omitempty"`
	ArtistID   string                `json:"artistId"`
	ArtistName string                `json:"artistName,omitempty"`
	TierID     string                `json:"tierId,omitempty"`
	TierName   string                `json:"tierName,omitempty"`
	Price      float64               `json:"priceMonthly,omitempty"`
	OccurredAt string                `json:"occurredAt"`
}
