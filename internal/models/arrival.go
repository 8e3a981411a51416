package models

import "strings"

// NewArrival announces a freshly launched product.
type NewArrival struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	ImageURL    string `json:"image_url"`
}

func (a NewArrival) Key() int { return a.ID }

// ReleaseDay returns the date part of the release timestamp.
func (a NewArrival) ReleaseDay() string {
	return DatePart(a.ReleaseDate)
}

// NewArrivalInput is the multipart payload for new arrival writes.
type NewArrivalInput struct {
	Name        string `schema:"name"`
	Description string `schema:"description"`
	ReleaseDate string `schema:"release_date"`
}

// DatePart cuts a combined "2024-05-01T10:00:00" value down to "2024-05-01".
func DatePart(s string) string {
	day, _, _ := strings.Cut(s, "T")
	return day
}
