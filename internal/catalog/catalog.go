package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"paintcompany/internal/models"
)

// DefaultPageSize is how many cards a category shows per "load more" step.
const DefaultPageSize = 8

// SortOrder selects the card order inside each category.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
)

// ParseSort falls back to SortNewest for unknown values.
func ParseSort(s string) SortOrder {
	switch SortOrder(s) {
	case SortNameAsc, SortNameDesc:
		return SortOrder(s)
	}
	return SortNewest
}

// PriceTag is one "1L: 500" line on a product card.
type PriceTag struct {
	Unit   string
	Amount string
}

// Card is a product prepared for display.
type Card struct {
	ID          int
	Name        string
	Category    string
	Description string
	Stock       string
	Image       string
	Features    []string
	Prices      []PriceTag
}

// NewCard builds the display card of p. image resolves the stored image
// reference; it may be nil.
func NewCard(p models.Product, image func(string) string) Card {
	c := Card{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock,
		Image:       p.ImageURL,
		Features:    []string(p.Features),
	}
	if image != nil {
		c.Image = image(p.ImageURL)
	}
	for _, f := range ParseKind(p.Category).Units() {
		if price := p.Get(f); price.Displayable() {
			c.Prices = append(c.Prices, PriceTag{Unit: f.Label(), Amount: strings.TrimSpace(string(price))})
		}
	}
	return c
}

// Section is one category block of the catalog page.
type Section struct {
	Name     string
	Title    string
	Slug     string
	Kind     Kind
	Cards    []Card
	Total    int
	Visible  int
	PageSize int
}

// HasMore reports whether "load more" has anything left to show.
func (s Section) HasMore() bool { return s.Visible < s.Total }

// NextVisible is the visible count after one more "load more".
func (s Section) NextVisible() int {
	return min(s.Visible+s.PageSize, s.Total)
}

// Query is the visitor's catalog state, carried in the URL.
type Query struct {
	Category string
	Search   string
	Sort     SortOrder
	Visible  map[string]int
}

// ParseQuery reads the catalog state from URL values.
func ParseQuery(v url.Values) Query {
	q := Query{
		Category: v.Get("category"),
		Search:   strings.TrimSpace(v.Get("q")),
		Sort:     ParseSort(v.Get("sort")),
		Visible:  map[string]int{},
	}
	if q.Category == "all" {
		q.Category = ""
	}
	for _, show := range v["show"] {
		slug, n, ok := strings.Cut(show, ":")
		if !ok {
			continue
		}
		if count, err := strconv.Atoi(n); err == nil && count > 0 {
			q.Visible[slug] = count
		}
	}
	return q
}

// Values encodes the query back into URL values.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != "" && q.Sort != SortNewest {
		v.Set("sort", string(q.Sort))
	}
	slugs := make([]string, 0, len(q.Visible))
	for slug := range q.Visible {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		v.Add("show", slug+":"+strconv.Itoa(q.Visible[slug]))
	}
	return v
}

// LoadMore returns the query with slug showing visible cards.
func (q Query) LoadMore(slug string, visible int) Query {
	next := q
	next.Visible = make(map[string]int, len(q.Visible)+1)
	for k, v := range q.Visible {
		next.Visible[k] = v
	}
	next.Visible[slug] = visible
	return next
}

// Options tune Build.
type Options struct {
	PageSize int
	Image    func(string) string
	Language language.Tag
}

type group struct {
	name     string
	kind     Kind
	products []models.Product
}

// Group buckets products by category: known categories first in display
// order, then unknown ones in the order they first appear. Each product is
// put in front of the ones seen before it.
func Group(products []models.Product) []Section {
	groups := make([]*group, 0, len(Ordered))
	byName := map[string]*group{}
	for _, k := range Ordered {
		g := &group{name: k.Name(), kind: k}
		groups = append(groups, g)
		byName[g.name] = g
	}
	for _, p := range products {
		name := p.Category
		if name == "" {
			name = Uncategorized
		}
		g, ok := byName[name]
		if !ok {
			g = &group{name: name, kind: ParseKind(name)}
			groups = append(groups, g)
			byName[name] = g
		}
		g.products = append([]models.Product{p}, g.products...)
	}

	sections := make([]Section, len(groups))
	for i, g := range groups {
		cards := make([]Card, len(g.products))
		for j, p := range g.products {
			cards[j] = NewCard(p, nil)
		}
		sections[i] = Section{
			Name:  g.name,
			Title: strings.ToUpper(g.name),
			Slug:  Slug(g.name),
			Kind:  g.kind,
			Cards: cards,
			Total: len(cards),
		}
	}
	return sections
}

// Build returns the non-empty catalog sections for q.
func Build(products []models.Product, q Query, opts Options) []Section {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	col := collate.New(opts.Language, collate.IgnoreCase)
	search := strings.ToLower(q.Search)

	var out []Section
	for _, s := range Group(products) {
		if q.Category != "" && q.Category != s.Slug && q.Category != s.Name {
			continue
		}
		cards := s.Cards[:0:0]
		for _, c := range s.Cards {
			if search != "" && !matches(c, search) {
				continue
			}
			if opts.Image != nil {
				c.Image = opts.Image(c.Image)
			}
			cards = append(cards, c)
		}
		if len(cards) == 0 {
			continue
		}
		switch q.Sort {
		case SortNameAsc:
			sort.SliceStable(cards, func(i, j int) bool { return col.CompareString(cards[i].Name, cards[j].Name) < 0 })
		case SortNameDesc:
			sort.SliceStable(cards, func(i, j int) bool { return col.CompareString(cards[i].Name, cards[j].Name) > 0 })
		}

		s.Total = len(cards)
		s.PageSize = opts.PageSize
		s.Visible = q.Visible[s.Slug]
		if s.Visible <= 0 {
			s.Visible = opts.PageSize
		}
		s.Visible = min(s.Visible, s.Total)
		s.Cards = cards[:s.Visible]
		out = append(out, s)
	}
	return out
}

func matches(c Card, search string) bool {
	if strings.Contains(strings.ToLower(c.Name), search) {
		return true
	}
	for _, f := range c.Features {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
