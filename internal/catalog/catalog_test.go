package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/models"
)

func product(id int, name, category string) models.Product {
	return models.Product{ID: id, Name: name, Category: category}
}

func TestPrimerScenario(t *testing.T) {
	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Primer X","category":"Primer","price1l":"500","features":"[\"Durable\"]"}`), &p))

	sections := Build([]models.Product{p}, Query{}, Options{})
	require.Len(t, sections, 1)
	assert.Equal(t, "PRIMER", sections[0].Title)
	require.Len(t, sections[0].Cards, 1)

	card := sections[0].Cards[0]
	assert.Equal(t, []PriceTag{{Unit: "1L", Amount: "500"}}, card.Prices)
	assert.Equal(t, []string{"Durable"}, card.Features)
}

func TestUnitsPerKind(t *testing.T) {
	labels := func(k Kind) []string {
		var out []string
		for _, f := range k.Units() {
			out = append(out, f.Label())
		}
		return out
	}
	assert.Equal(t, []string{"50g", "100g", "200g", "500g", "1kg"}, labels(Metallic))
	assert.Equal(t, []string{"200ml", "500ml", "1L", "4L", "20L"}, labels(Aluminium))
	assert.Equal(t, []string{"200ml", "500ml", "1L", "4L", "20L"}, labels(MetalWoodEnamel))
	assert.Equal(t, []string{"1L", "5L", "10L", "20L"}, labels(Distemper))
	assert.Equal(t, []string{"1L", "4L", "10L", "20L"}, labels(Emulsion))
	assert.Equal(t, []string{"1L", "4L", "10L", "20L"}, labels(Other))
}

func TestHiddenPrices(t *testing.T) {
	p := product(1, "Gold", "Silver/Copper/Gold")
	p.Set(models.Price50g, "120")
	p.Set(models.Price100g, "0")
	p.Set(models.Price1kg, "null")
	p.Set(models.Price1L, "999")

	card := NewCard(p, nil)
	assert.Equal(t, []PriceTag{{Unit: "50g", Amount: "120"}}, card.Prices)
}

func TestGroupOrderAndPrepend(t *testing.T) {
	products := []models.Product{
		product(1, "A", "Emulsion"),
		product(2, "B", "Texture"),
		product(3, "C", "Primer"),
		product(4, "D", ""),
		product(5, "E", "Emulsion"),
	}
	sections := Build(products, Query{}, Options{})

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"PRIMER", "EMULSION", "TEXTURE", "UNCATEGORIZED"}, titles)

	emulsion := sections[1]
	assert.Equal(t, "E", emulsion.Cards[0].Name)
	assert.Equal(t, "A", emulsion.Cards[1].Name)
}

func TestFilterAndSearch(t *testing.T) {
	a := product(1, "Weather Coat", "Emulsion")
	b := product(2, "Base Primer", "Primer")
	b.Features = models.Features{"Weatherproof"}
	c := product(3, "Plain", "Primer")
	products := []models.Product{a, b, c}

	sections := Build(products, Query{Category: "primer"}, Options{})
	require.Len(t, sections, 1)
	assert.Equal(t, 2, sections[0].Total)

	sections = Build(products, Query{Search: "weather"}, Options{})
	require.Len(t, sections, 2)
	assert.Equal(t, "Base Primer", sections[0].Cards[0].Name)
	assert.Equal(t, "Weather Coat", sections[1].Cards[0].Name)

	assert.Empty(t, Build(products, Query{Search: "nothing"}, Options{}))
}

func TestSortByName(t *testing.T) {
	products := []models.Product{
		product(1, "beta", "Primer"),
		product(2, "Alpha", "Primer"),
		product(3, "gamma", "Primer"),
	}
	names := func(s []Section) []string {
		var out []string
		for _, c := range s[0].Cards {
			out = append(out, c.Name)
		}
		return out
	}
	assert.Equal(t, []string{"gamma", "Alpha", "beta"}, names(Build(products, Query{}, Options{})))
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names(Build(products, Query{Sort: SortNameAsc}, Options{})))
	assert.Equal(t, []string{"gamma", "beta", "Alpha"}, names(Build(products, Query{Sort: SortNameDesc}, Options{})))
}

func TestLoadMore(t *testing.T) {
	var products []models.Product
	for i := 1; i <= 19; i++ {
		products = append(products, product(i, fmt.Sprintf("P%02d", i), "Distemper"))
	}

	s := Build(products, Query{}, Options{})[0]
	assert.Len(t, s.Cards, 8)
	assert.True(t, s.HasMore())
	assert.Equal(t, 16, s.NextVisible())

	q := Query{}.LoadMore(s.Slug, s.NextVisible())
	s = Build(products, q, Options{})[0]
	assert.Len(t, s.Cards, 16)
	assert.Equal(t, 19, s.NextVisible())

	s = Build(products, q.LoadMore(s.Slug, 40), Options{})[0]
	assert.Len(t, s.Cards, 19)
	assert.Equal(t, 19, s.Visible)
	assert.False(t, s.HasMore())
}

func TestQueryRoundTrip(t *testing.T) {
	v, err := url.ParseQuery("category=primer&q=coat&sort=name-desc&show=primer:16&show=bad&show=x:0")
	require.NoError(t, err)
	q := ParseQuery(v)
	assert.Equal(t, "primer", q.Category)
	assert.Equal(t, "coat", q.Search)
	assert.Equal(t, SortNameDesc, q.Sort)
	assert.Equal(t, map[string]int{"primer": 16}, q.Visible)
	assert.Equal(t, "category=primer&q=coat&show=primer%3A16&sort=name-desc", q.Values().Encode())

	assert.Equal(t, "", ParseQuery(url.Values{"category": {"all"}}).Category)
	assert.Equal(t, SortNewest, ParseQuery(url.Values{"sort": {"price"}}).Sort)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "silver-copper-gold", Slug("Silver/Copper/Gold"))
	assert.Equal(t, "metal-and-wood-primer", Slug("Metal and Wood Primer"))
	assert.Equal(t, "uncategorized", Slug(Uncategorized))
	assert.Equal(t, Metallic, ParseKind("Silver/Copper/Gold"))
	assert.Equal(t, Other, ParseKind("primer"))
	assert.Len(t, Names(), 7)
}
