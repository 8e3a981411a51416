package models

import "strconv"

// Popular product types offered in the admin form.
const (
	TypeInterior = "Interior"
	TypeExterior = "Exterior"
	TypeOther    = "Other"
)

// PopularTypes lists the accepted popular product types.
var PopularTypes = []string{TypeInterior, TypeExterior, TypeOther}

// Rating bounds for popular products.
const (
	MinRating     = 1.0
	MaxRating     = 5.0
	DefaultRating = 4.0
)

// PopularProduct is a curated product shown in the "Popular Product" section.
// It is independent from the catalog.
type PopularProduct struct {
	ID          int      `json:"id" validate:"required,gt=0"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Features    Features `json:"features"`
	Rating      float64  `json:"rating"`
	ImageURL    string   `json:"image_url"`
}

func (p PopularProduct) Key() int { return p.ID }

// PopularProductInput is the multipart payload for popular product writes.
type PopularProductInput struct {
	Name        string   `schema:"name"`
	Type        string   `schema:"type"`
	Description string   `schema:"description"`
	Features    Features `schema:"features"`
	Rating      string   `schema:"rating"`
}

// ClampRating keeps r within [MinRating, MaxRating].
func ClampRating(r float64) float64 {
	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	}
	return r
}

// FormatRating renders a rating with one decimal, as the API stores it.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
