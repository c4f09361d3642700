package fansearchartists

import "fanclub/internal/models"

type Input struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type Output struct {
	Artists []models.Artist `json:"artists"`
	Total   int             `json:"total"`
}
