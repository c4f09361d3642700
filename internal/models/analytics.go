package models

type RevenuePoint struct {
	Month   string  `json:"month" yaml:"month" db:"month"`
	Revenue float64 `json:"revenue" yaml:"revenue" db:"revenue"`
}

type ArtistAnalytics struct {
	ArtistID                string         `json:"artistId"`
	TotalSubscribers        int            `json:"totalSubscribers"`
	MRR                     float64        `json:"mrr"`
	ChurnRate               float64        `json:"churnRate"`
	SubscribersByTier       map[string]int `json:"subscribersByTier"`
	RevenueHistory          []RevenuePoint `json:"revenueHistory"`
	NewSubscribersThisMonth int            `json:"newSubscribersThisMonth"`
	CanceledThisMonth       int            `json:"canceledThisMonth"`
}
