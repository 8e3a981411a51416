package paintapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"paintcompany/internal/models"
)

// Products returns up to limit catalog products.
func (c *Client) Products(ctx context.Context, limit int) ([]models.Product, error) {
	page, err := list[models.Product](ctx, c, "/api/products/", url.Values{"limit": {strconv.Itoa(limit)}})
	return page.Items, err
}

// PopularProducts returns the curated popular products.
func (c *Client) PopularProducts(ctx context.Context) ([]models.PopularProduct, error) {
	page, err := list[models.PopularProduct](ctx, c, "/api/popular-products/", nil)
	return page.Items, err
}

// NewArrivals returns the latest new arrivals.
func (c *Client) NewArrivals(ctx context.Context, limit int) ([]models.NewArrival, error) {
	page, err := list[models.NewArrival](ctx, c, "/api/new-arrivals", url.Values{"limit": {strconv.Itoa(limit)}})
	return page.Items, err
}

// NewsQuery filters the public news feed.
type NewsQuery struct {
	Limit       int
	Highlighted bool
	CurrentOnly bool
}

func (q NewsQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Highlighted {
		v.Set("highlighted", "true")
	}
	if q.CurrentOnly {
		v.Set("current_only", "true")
	}
	return v
}

// NewsEvents returns the public news and events matching q.
func (c *Client) NewsEvents(ctx context.Context, q NewsQuery) ([]models.NewsEvent, error) {
	page, err := list[models.NewsEvent](ctx, c, "/api/news-events", q.values())
	return page.Items, err
}

// ContactInfo returns the public contact details.
func (c *Client) ContactInfo(ctx context.Context) (models.ContactInfo, error) {
	var info models.ContactInfo
	err := c.getJSON(ctx, "/api/contact/info", nil, &info)
	return info, err
}

// SubmitContact sends a visitor message.
func (c *Client) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/contact/submit", msg, nil)
}
