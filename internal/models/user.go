package models

// User is the single mocked signed-in listener.
type User struct {
	ID       string `json:"id" yaml:"id" db:"id"`
	Name     string `json:"name" yaml:"name" db:"name"`
	Email    string `json:"email" yaml:"email" db:"email"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl" db:"image_url"`
}
