package fancancelsubscription

import "fanclub/internal/models"

type Input struct {
	UserID   string `json:"userId,omitempty"`
	ArtistID string `json:"artistId"`
}

type Output struct {
	Subscription models.FanSubscription       `json:"subscription"`
	EventType    models.SubscriptionEventType `json:"eventType"`
}
