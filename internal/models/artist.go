package models

type Artist struct {
	ID                   string   `json:"id" yaml:"id" db:"id"`
	Name                 string   `json:"name" yaml:"name" db:"name"`
	Verified             bool     `json:"verified" yaml:"verified" db:"verified"`
	MonthlyListeners     int64    `json:"monthlyListeners" yaml:"monthlyListeners" db:"monthly_listeners"`
	ImageURL             string   `json:"imageUrl" yaml:"imageUrl" db:"image_url"`
	HeaderImageURL       string   `json:"headerImageUrl" yaml:"headerImageUrl" db:"header_image_url"`
	SubscriptionsEnabled bool     `json:"subscriptionsEnabled" yaml:"subscriptionsEnabled" db:"subscriptions_enabled"`
	Bio                  string   `json:"bio,omitempty" yaml:"bio" db:"bio"`
	Genre                string   `json:"genre,omitempty" yaml:"genre" db:"genre"`
	LatestAlbum          string   `json:"latestAlbum,omitempty" yaml:"latestAlbum" db:"latest_album"`
	LatestAlbumDate      string   `json:"latestAlbumDate,omitempty" yaml:"latestAlbumDate" db:"latest_album_date"`
	Label                string   `json:"label,omitempty" yaml:"label" db:"label"`
	Members              []string `json:"members,omitempty" yaml:"members" db:"members"`
}

// Clone returns a copy that shares no slices with a.
func (a Artist) Clone() Artist {
	a.Members = append([]string(nil), a.Members...)
	return a
}
