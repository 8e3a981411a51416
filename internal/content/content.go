// Package content holds the static copy of the public site and the
// placeholder records shown when the API cannot be reached.
package content

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"paintcompany/internal/models"
)

//go:embed site.yaml
var siteYAML []byte

type Slide struct {
	Image string `yaml:"image"`
	Alt   string `yaml:"alt"`
}

type Stat struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
}

type CategoryTile struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

type Testimonial struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Initials returns up to two initials for the avatar bubble.
func (t Testimonial) Initials() string {
	var out []rune
	start := true
	for _, r := range t.Name {
		if r == ' ' {
			start = true
			continue
		}
		if start && len(out) < 2 {
			out = append(out, r)
		}
		start = false
	}
	return string(out)
}

type Store struct {
	Intro     string   `yaml:"intro"`
	Corporate string   `yaml:"corporate"`
	Factory   string   `yaml:"factory"`
	Phone     string   `yaml:"phone"`
	Email     string   `yaml:"email"`
	Hours     []string `yaml:"hours"`
	MapQuery  string   `yaml:"map_query"`
}

type PopularFallback struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Rating      float64  `yaml:"rating"`
	Image       string   `yaml:"image"`
}

type ArrivalFallback struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type NewsFallback struct {
	Title   string `yaml:"title"`
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
}

type ContactFallback struct {
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// Site is the whole static content document.
type Site struct {
	Company string `yaml:"company"`
	Tagline string `yaml:"tagline"`
	Hero    struct {
		Title     string  `yaml:"title"`
		Highlight string  `yaml:"highlight"`
		Text      string  `yaml:"text"`
		Slides    []Slide `yaml:"slides"`
	} `yaml:"hero"`
	About struct {
		Text  string `yaml:"text"`
		Badge string `yaml:"badge"`
		Stats []Stat `yaml:"stats"`
	} `yaml:"about"`
	Categories   []CategoryTile `yaml:"categories"`
	Testimonials []Testimonial  `yaml:"testimonials"`
	Store        Store          `yaml:"store"`
	Fallback     struct {
		Popular PopularFallback `yaml:"popular"`
		Arrival ArrivalFallback `yaml:"arrival"`
		News    NewsFallback    `yaml:"news"`
		Contact ContactFallback `yaml:"contact"`
	} `yaml:"fallback"`
}

// Load parses the embedded document.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

// Parse decodes a site document and checks the parts the pages rely on.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	switch {
	case len(s.Hero.Slides) == 0:
		return nil, fmt.Errorf("content: hero needs at least one slide")
	case s.Fallback.Popular.Name == "", s.Fallback.Arrival.Name == "", s.Fallback.News.Title == "":
		return nil, fmt.Errorf("content: fallback records are incomplete")
	case s.Fallback.Contact.Email == "" || s.Fallback.Contact.Phone == "" || s.Fallback.Contact.Address == "":
		return nil, fmt.Errorf("content: fallback contact is incomplete")
	}
	return &s, nil
}

// PopularProduct returns the placeholder popular product.
func (s *Site) PopularProduct() models.PopularProduct {
	f := s.Fallback.Popular
	return models.PopularProduct{
		Name:        f.Name,
		Type:        f.Type,
		Description: f.Description,
		Features:    models.Features(f.Features),
		Rating:      f.Rating,
		ImageURL:    f.Image,
	}
}

// NewArrival returns the placeholder arrival, released now.
func (s *Site) NewArrival(now time.Time) models.NewArrival {
	f := s.Fallback.Arrival
	return models.NewArrival{
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: now.Format("2006-01-02"),
		ImageURL:    f.Image,
	}
}

// NewsEvent returns the placeholder news item dated now.
func (s *Site) NewsEvent(now time.Time) models.NewsEvent {
	f := s.Fallback.News
	return models.NewsEvent{
		Title:   f.Title,
		Type:    f.Type,
		Content: f.Content,
		Date:    now.Format("2006-01-02"),
	}
}

// ContactInfo returns the default contact record.
func (s *Site) ContactInfo() models.ContactInfo {
	f := s.Fallback.Contact
	return models.ContactInfo{Email: f.Email, Phone: f.Phone, Address: f.Address}
}
