package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultStock is the stock status new products start with.
const DefaultStock = "In Stock"

// Price is a size price as the API stores it: free text, usually a number.
type Price string

// UnmarshalJSON accepts strings, numbers and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*p = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = Price(n.String())
	}
	return nil
}

// Displayable reports whether the price should be shown to visitors.
func (p Price) Displayable() bool {
	s := strings.TrimSpace(string(p))
	return s != "" && s != "0" && !strings.EqualFold(s, "null")
}

// PriceField identifies one of the size price columns of a product.
type PriceField int

const (
	Price1L PriceField = iota
	Price4L
	Price5L
	Price10L
	Price20L
	Price200ml
	Price500ml
	Price50g
	Price100g
	Price200g
	Price500g
	Price1kg
)

// AllPriceFields lists every price column in API order.
var AllPriceFields = []PriceField{
	Price1L, Price4L, Price5L, Price10L, Price20L,
	Price500ml, Price200ml, Price1kg,
	Price500g, Price200g, Price100g, Price50g,
}

var priceFieldInfo = map[PriceField]struct{ key, label string }{
	Price1L:    {"price1l", "1L"},
	Price4L:    {"price4l", "4L"},
	Price5L:    {"price5l", "5L"},
	Price10L:   {"price10l", "10L"},
	Price20L:   {"price20l", "20L"},
	Price200ml: {"price200ml", "200ml"},
	Price500ml: {"price500ml", "500ml"},
	Price50g:   {"price50g", "50g"},
	Price100g:  {"price100g", "100g"},
	Price200g:  {"price200g", "200g"},
	Price500g:  {"price500g", "500g"},
	Price1kg:   {"price1kg", "1kg"},
}

// Key is the JSON and form field name, e.g. "price1l".
func (f PriceField) Key() string { return priceFieldInfo[f].key }

// Label is the size shown next to the price, e.g. "1L".
func (f PriceField) Label() string { return priceFieldInfo[f].label }

// Prices holds every size price column. JSON matching is case-insensitive,
// so the backend's "price1L" decodes into Price1L as well.
type Prices struct {
	Price1L    Price `json:"price1l" form:"price1l" schema:"price1l"`
	Price4L    Price `json:"price4l" form:"price4l" schema:"price4l"`
	Price5L    Price `json:"price5l" form:"price5l" schema:"price5l"`
	Price10L   Price `json:"price10l" form:"price10l" schema:"price10l"`
	Price20L   Price `json:"price20l" form:"price20l" schema:"price20l"`
	Price500ml Price `json:"price500ml" form:"price500ml" schema:"price500ml"`
	Price200ml Price `json:"price200ml" form:"price200ml" schema:"price200ml"`
	Price1kg   Price `json:"price1kg" form:"price1kg" schema:"price1kg"`
	Price500g  Price `json:"price500g" form:"price500g" schema:"price500g"`
	Price200g  Price `json:"price200g" form:"price200g" schema:"price200g"`
	Price100g  Price `json:"price100g" form:"price100g" schema:"price100g"`
	Price50g   Price `json:"price50g" form:"price50g" schema:"price50g"`
}

func (p *Prices) field(f PriceField) *Price {
	switch f {
	case Price1L:
		return &p.Price1L
	case Price4L:
		return &p.Price4L
	case Price5L:
		return &p.Price5L
	case Price10L:
		return &p.Price10L
	case Price20L:
		return &p.Price20L
	case Price200ml:
		return &p.Price200ml
	case Price500ml:
		return &p.Price500ml
	case Price50g:
		return &p.Price50g
	case Price100g:
		return &p.Price100g
	case Price200g:
		return &p.Price200g
	case Price500g:
		return &p.Price500g
	case Price1kg:
		return &p.Price1kg
	}
	panic(fmt.Sprintf("models: unknown price field %d", f))
}

// Get returns the price stored for f.
func (p Prices) Get(f PriceField) Price { return *p.field(f) }

// Set stores v for f.
func (p *Prices) Set(f PriceField, v Price) { *p.field(f) = v }

// Product is a catalog entry managed under /admin/products.
type Product struct {
	ID          int      `json:"id" validate:"required,gt=0"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    Features `json:"features"`
	Stock       string   `json:"stock"`
	ImageURL    string   `json:"image_url"`
	Prices
}

// Key returns the record id.
func (p Product) Key() int { return p.ID }

// ProductInput is the multipart payload for product create and update.
type ProductInput struct {
	Name        string   `schema:"name"`
	Category    string   `schema:"category"`
	Description string   `schema:"description"`
	Features    Features `schema:"features"`
	Stock       string   `schema:"stock"`
	Prices
}
