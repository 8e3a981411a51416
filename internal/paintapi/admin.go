package paintapi

import (
	"context"
	"net/http"

	"paintcompany/internal/media"
	"paintcompany/internal/models"
)

// AdminProducts returns every product, following pagination links.
func (c *Client) AdminProducts(ctx context.Context) ([]models.Product, error) {
	return listAll[models.Product](ctx, c, "/admin/products/", nil)
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput, img *media.Image) (models.Product, error) {
	return sendForm[models.Product](ctx, c, http.MethodPost, "/admin/products/", in, img)
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in models.ProductInput, img *media.Image) (models.Product, error) {
	return sendForm[models.Product](ctx, c, http.MethodPut, path("/admin/products/%d", id), in, img)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, path("/admin/products/%d", id))
}

func (c *Client) AdminPopularProducts(ctx context.Context) ([]models.PopularProduct, error) {
	return listAll[models.PopularProduct](ctx, c, "/admin/popular-products", nil)
}

func (c *Client) CreatePopularProduct(ctx context.Context, in models.PopularProductInput, img *media.Image) (models.PopularProduct, error) {
	return sendForm[models.PopularProduct](ctx, c, http.MethodPost, "/admin/popular-products/", in, img)
}

func (c *Client) UpdatePopularProduct(ctx context.Context, id int, in models.PopularProductInput, img *media.Image) (models.PopularProduct, error) {
	return sendForm[models.PopularProduct](ctx, c, http.MethodPut, path("/admin/popular-products/%d/", id), in, img)
}

func (c *Client) DeletePopularProduct(ctx context.Context, id int) error {
	return c.delete(ctx, path("/admin/popular-products/%d", id))
}

func (c *Client) AdminNewArrivals(ctx context.Context) ([]models.NewArrival, error) {
	return listAll[models.NewArrival](ctx, c, "/admin/new-arrivals", nil)
}

func (c *Client) CreateNewArrival(ctx context.Context, in models.NewArrivalInput, img *media.Image) (models.NewArrival, error) {
	return sendForm[models.NewArrival](ctx, c, http.MethodPost, "/admin/new-arrivals", in, img)
}

func (c *Client) UpdateNewArrival(ctx context.Context, id int, in models.NewArrivalInput, img *media.Image) (models.NewArrival, error) {
	return sendForm[models.NewArrival](ctx, c, http.MethodPut, path("/admin/new-arrivals/%d", id), in, img)
}

func (c *Client) DeleteNewArrival(ctx context.Context, id int) error {
	return c.delete(ctx, path("/admin/new-arrivals/%d", id))
}

func (c *Client) AdminNewsEvents(ctx context.Context) ([]models.NewsEvent, error) {
	return listAll[models.NewsEvent](ctx, c, "/admin/news-events", nil)
}

func (c *Client) CreateNewsEvent(ctx context.Context, in models.NewsEventInput) (models.NewsEvent, error) {
	return sendForm[models.NewsEvent](ctx, c, http.MethodPost, "/admin/news-events", in, nil)
}

func (c *Client) UpdateNewsEvent(ctx context.Context, id int, in models.NewsEventInput) (models.NewsEvent, error) {
	return sendForm[models.NewsEvent](ctx, c, http.MethodPut, path("/admin/news-events/%d", id), in, nil)
}

func (c *Client) DeleteNewsEvent(ctx context.Context, id int) error {
	return c.delete(ctx, path("/admin/news-events/%d", id))
}

// AdminContactInfo returns the editable contact record.
func (c *Client) AdminContactInfo(ctx context.Context) (models.ContactInfo, error) {
	var info models.ContactInfo
	err := c.getJSON(ctx, "/admin/contact/info", nil, &info)
	return info, err
}

func (c *Client) UpdateContactInfo(ctx context.Context, info models.ContactInfo) (models.ContactInfo, error) {
	var saved models.ContactInfo
	err := c.sendJSON(ctx, http.MethodPut, "/admin/contact/info", info, &saved)
	return saved, err
}

func (c *Client) ContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return listAll[models.ContactSubmission](ctx, c, "/admin/contact/submissions", nil)
}

// MarkSubmissionRead flags a submission as read.
func (c *Client) MarkSubmissionRead(ctx context.Context, id int) error {
	body := map[string]bool{"read_status": true}
	return c.sendJSON(ctx, http.MethodPut, path("/admin/contact/submissions/%d", id), body, nil)
}

func (c *Client) DeleteSubmission(ctx context.Context, id int) error {
	return c.delete(ctx, path("/admin/contact/submissions/%d", id))
}
