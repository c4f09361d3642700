package models

type ContentType string

const (
	ContentClip         ContentType = "clip"
	ContentPlaylist     ContentType = "playlist"
	ContentAudioMessage ContentType = "audio-message"
	ContentArtistPick   ContentType = "artist-pick"
	ContentEarlyRelease ContentType = "early-release"
	ContentMerchCode    ContentType = "merch-code"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{
	ContentClip, ContentPlaylist, ContentAudioMessage,
	ContentArtistPick, ContentEarlyRelease, ContentMerchCode,
}

func (c ContentType) Valid() bool {
	for _, t := range ContentTypes {
		if c == t {
			return true
		}
	}
	return false
}

// ExclusiveContent is gated to the tiers listed in TierAccess.
type ExclusiveContent struct {
	ID           string      `json:"id" yaml:"id" db:"id"`
	ArtistID     string      `json:"artistId" yaml:"artistId" db:"artist_id"`
	Type         ContentType `json:"type" yaml:"type" db:"type"`
	Title        string      `json:"title" yaml:"title" db:"title"`
	Description  string      `json:"description" yaml:"description" db:"description"`
	TierAccess   []string    `json:"tierAccess" yaml:"tierAccess" db:"tier_access"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl" db:"thumbnail_url"`
	CreatedAt    string      `json:"createdAt" yaml:"createdAt" db:"created_at"`
	Content      string      `json:"content,omitempty" yaml:"content" db:"content"`
}

func (c ExclusiveContent) Clone() ExclusiveContent {
	c.TierAccess = append(make([]string, 0, len(c.TierAccess)), c.TierAccess...)
	return c
}

// GrantsTier reports whether tierID unlocks the content.
func (c ExclusiveContent) GrantsTier(tierID string) bool {
	for _, id := range c.TierAccess {
		if id == tierID {
			return true
		}
	}
	return false
}

// ContentView pairs content with the viewer's lock state.
type ContentView struct {
	ExclusiveContent
	Locked bool `json:"locked"`
}
