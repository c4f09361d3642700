package models

type Mode string

const (
	ModeListener Mode = "listener"
	ModeArtist   Mode = "artist"
)

func (m Mode) Valid() bool {
	return m == ModeListener || m == ModeArtist
}

// Session is the UI-facing selection state: which experience is shown and
// which artist the artist dashboard is managing.
type Session struct {
	Mode            Mode   `json:"mode"`
	CurrentArtistID string `json:"currentArtistId,omitempty"`
	CurrentUserID   string `json:"currentUserId"`
}
