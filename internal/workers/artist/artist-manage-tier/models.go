package artistmanagetier

import "fanclub/internal/models"

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Input carries the tier fields flat so a process form can map onto it.
// Create uses ArtistID and the fields; update and delete use TierID.
type Input struct {
	Action         Action                  `json:"action"`
	ArtistID       string                  `json:"artistId,omitempty"`
	TierID         string                  `json:"tierId,omitempty"`
	Name           *string                 `json:"name,omitempty"`
	PriceMonthly   *float64                `json:"priceMonthly,omitempty"`
	Tagline        *string                 `json:"tagline,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Features       []string                `json:"features,omitempty"`
	ContentPreview []models.ContentPreview `json:"contentPreview,omitempty"`
	Highlight      *models.Highlight       `json:"highlight,omitempty"`
}

type Output struct {
	Action Action       `json:"action"`
	TierID string       `json:"tierId"`
	Tier   *models.Tier `json:"tier,omitempty"`
	// TierCount is the artist's tier count after the action.
	TierCount int `json:"tierCount"`
}
