package fancheckcontentaccess

type Input struct {
	UserID string `json:"userId,omitempty"`
	// ContentID checks a single item.
	ContentID string `json:"contentId,omitempty"`
	// ArtistID lists the artist's content split by lock state.
	ArtistID string `json:"artistId,omitempty"`
}

type Output struct {
	UserID     string   `json:"userId"`
	ContentID  string   `json:"contentId,omitempty"`
	HasAccess  *bool    `json:"hasAccess,omitempty"`
	ArtistID   string   `json:"artistId,omitempty"`
	Accessible []string `json:"accessibleContentIds,omitempty"`
	Locked     []string `json:"lockedContentIds,omitempty"`
}
