package models

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// FanSubscription links a user to one tier of an artist. There is at most
// one per (UserID, ArtistID); re-subscribing reuses it.
type FanSubscription struct {
	UserID     string             `json:"userId" yaml:"userId" db:"user_id"`
	ArtistID   string             `json:"artistId" yaml:"artistId" db:"artist_id"`
	TierID     string             `json:"tierId" yaml:"tierId" db:"tier_id"`
	Status     SubscriptionStatus `json:"status" yaml:"status" db:"status"`
	StartDate  string             `json:"startDate" yaml:"startDate" db:"start_date"`
	CanceledAt string             `json:"canceledAt,omitempty" yaml:"canceledAt" db:"canceled_at"`
}

func (s FanSubscription) IsActive() bool {
	return s.Status == StatusActive
}
