package models

type PreviewType string

const (
	PreviewClip        PreviewType = "clip"
	PreviewPlaylist    PreviewType = "playlist"
	PreviewMerch       PreviewType = "merch"
	PreviewEarlyAccess PreviewType = "early-access"
)

func (p PreviewType) Valid() bool {
	switch p {
	case PreviewClip, PreviewPlaylist, PreviewMerch, PreviewEarlyAccess:
		return true
	}
	return false
}

// ContentPreview is a teaser shown on a tier card.
type ContentPreview struct {
	Type      PreviewType `json:"type" yaml:"type"`
	Title     string      `json:"title" yaml:"title"`
	Thumbnail string      `json:"thumbnail,omitempty" yaml:"thumbnail"`
}

type Highlight string

const (
	HighlightNone        Highlight = ""
	HighlightMostPopular Highlight = "Most Popular"
	HighlightBestValue   Highlight = "Best Value"
)

func (h Highlight) Valid() bool {
	switch h {
	case HighlightNone, HighlightMostPopular, HighlightBestValue:
		return true
	}
	return false
}

type Tier struct {
	ID             string           `json:"id" yaml:"id" db:"id"`
	ArtistID       string           `json:"artistId" yaml:"artistId" db:"artist_id"`
	Name           string           `json:"name" yaml:"name" db:"name"`
	PriceMonthly   float64          `json:"priceMonthly" yaml:"priceMonthly" db:"price_monthly"`
	Tagline        string           `json:"tagline" yaml:"tagline" db:"tagline"`
	Description    string           `json:"description" yaml:"description" db:"description"`
	Features       []string         `json:"features" yaml:"features" db:"features"`
	ContentPreview []ContentPreview `json:"contentPreview" yaml:"contentPreview" db:"content_preview"`
	Highlight      Highlight        `json:"highlight,omitempty" yaml:"highlight" db:"highlight"`
}

// Clone deep-copies t. The slices are never nil so they encode as [].
func (t Tier) Clone() Tier {
	t.Features = append(make([]string, 0, len(t.Features)), t.Features...)
	t.ContentPreview = append(make([]ContentPreview, 0, len(t.ContentPreview)), t.ContentPreview...)
	return t
}

// TierUpdate carries a partial tier edit; nil fields are left unchanged.
type TierUpdate struct {
	Name           *string          `json:"name,omitempty"`
	PriceMonthly   *float64         `json:"priceMonthly,omitempty"`
	Tagline        *string          `json:"tagline,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Features       []string         `json:"features,omitempty"`
	ContentPreview []ContentPreview `json:"contentPreview,omitempty"`
	Highlight      *Highlight       `json:"highlight,omitempty"`
}
