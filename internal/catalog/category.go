// Package catalog groups, filters, sorts and pages products for the public
// product catalog.
package catalog

import (
	"strings"
	"unicode"

	"paintcompany/internal/models"
)

// Kind is a paint category. Each kind carries its own set of price units.
type Kind int

const (
	// Other covers categories the site does not know about, including
	// products without a category.
	Other Kind = iota
	Primer
	Emulsion
	Distemper
	MetalWoodPrimer
	MetalWoodEnamel
	Aluminium
	Metallic
)

// Uncategorized names products stored without a category.
const Uncategorized = "Uncategorized"

// Ordered lists the known categories in display order.
var Ordered = []Kind{Primer, Emulsion, Distemper, MetalWoodPrimer, MetalWoodEnamel, Aluminium, Metallic}

// Name returns the category name as stored by the API.
func (k Kind) Name() string {
	switch k {
	case Primer:
		return "Primer"
	case Emulsion:
		return "Emulsion"
	case Distemper:
		return "Distemper"
	case MetalWoodPrimer:
		return "Metal and Wood Primer"
	case MetalWoodEnamel:
		return "Metal and Wood Enamel"
	case Aluminium:
		return "Aluminium Paints"
	case Metallic:
		return "Silver/Copper/Gold"
	case Other:
		return ""
	}
	return ""
}

// Units returns the price units shown for the kind, smallest first.
func (k Kind) Units() []models.PriceField {
	switch k {
	case Metallic:
		return []models.PriceField{models.Price50g, models.Price100g, models.Price200g, models.Price500g, models.Price1kg}
	case MetalWoodPrimer, MetalWoodEnamel, Aluminium:
		return []models.PriceField{models.Price200ml, models.Price500ml, models.Price1L, models.Price4L, models.Price20L}
	case Distemper:
		return []models.PriceField{models.Price1L, models.Price5L, models.Price10L, models.Price20L}
	case Primer, Emulsion, Other:
		return []models.PriceField{models.Price1L, models.Price4L, models.Price10L, models.Price20L}
	}
	return []models.PriceField{models.Price1L, models.Price4L, models.Price10L, models.Price20L}
}

// ParseKind maps a stored category name to its kind. Unknown names are Other.
func ParseKind(name string) Kind {
	for _, k := range Ordered {
		if k.Name() == name {
			return k
		}
	}
	return Other
}

// Names returns the known category names in display order.
func Names() []string {
	names := make([]string, len(Ordered))
	for i, k := range Ordered {
		names[i] = k.Name()
	}
	return names
}

// Slug turns a category name into a URL-safe identifier.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
