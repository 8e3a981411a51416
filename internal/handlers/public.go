package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"paintcompany/internal/catalog"
	"paintcompany/internal/media"
	"paintcompany/internal/models"
	"paintcompany/internal/paintapi"
)

const (
	defaultPopularType   = "Exterior / Interior"
	defaultPopularRating = 4.5
	msgContactSent       = "Message sent successfully! We'll get back to you soon."
	msgContactMissing    = "Please fill in your name, a valid email and a message."
	msgContactFailed     = "Failed to send message. Please try again later."
)

// homeSections are the API-backed parts of the home page.
type homeSections struct {
	Popular models.PopularProduct
	Arrival models.NewArrival
	News    []models.NewsEvent
	Contact models.ContactInfo
}

// popularSection picks the best rated popular product. On error it returns
// the placeholder along with the error.
func (h *Handler) popularSection(ctx context.Context) (models.PopularProduct, error) {
	items, err := h.api.PopularProducts(ctx)
	if err != nil {
		return h.site.PopularProduct(), fmt.Errorf("popular products: %w", err)
	}
	if len(items) == 0 {
		return h.site.PopularProduct(), nil
	}
	best := items[0]
	for _, p := range items[1:] {
		if p.Rating > best.Rating {
			best = p
		}
	}
	if best.Type == "" {
		best.Type = defaultPopularType
	}
	if best.Rating == 0 {
		best.Rating = defaultPopularRating
	}
	best.ImageURL = h.image(media.PopularProducts)(best.ImageURL)
	return best, nil
}

func (h *Handler) arrivalSection(ctx context.Context) (models.NewArrival, error) {
	items, err := h.api.NewArrivals(ctx, 1)
	if err != nil {
		return h.site.NewArrival(h.now()), fmt.Errorf("new arrivals: %w", err)
	}
	if len(items) == 0 {
		return h.site.NewArrival(h.now()), nil
	}
	a := items[0]
	a.ImageURL = h.image(media.NewArrivals)(a.ImageURL)
	return a, nil
}

// newsSection prefers highlighted current items and falls back to any
// current items, then to the placeholder.
func (h *Handler) newsSection(ctx context.Context) ([]models.NewsEvent, error) {
	placeholder := []models.NewsEvent{h.site.NewsEvent(h.now())}
	q := paintapi.NewsQuery{Limit: 3, Highlighted: true, CurrentOnly: true}
	items, err := h.api.NewsEvents(ctx, q)
	if err == nil && len(items) == 0 {
		q.Highlighted = false
		items, err = h.api.NewsEvents(ctx, q)
	}
	if err != nil {
		return placeholder, fmt.Errorf("news and events: %w", err)
	}
	if len(items) == 0 {
		return placeholder, nil
	}
	return items, nil
}

func (h *Handler) contactSection(ctx context.Context) (models.ContactInfo, error) {
	info, err := h.api.ContactInfo(ctx)
	if err != nil {
		return h.site.ContactInfo(), fmt.Errorf("contact info: %w", err)
	}
	return info.WithDefaults(h.site.ContactInfo()), nil
}

// loadHome fetches the home page sections concurrently. Each section falls
// back to placeholder content on its own, so a failure does not cancel the
// others; the first one is logged once all are done.
func (h *Handler) loadHome(ctx context.Context) homeSections {
	var (
		s homeSections
		g errgroup.Group
	)
	g.Go(func() (err error) { s.Popular, err = h.popularSection(ctx); return err })
	g.Go(func() (err error) { s.Arrival, err = h.arrivalSection(ctx); return err })
	g.Go(func() (err error) { s.News, err = h.newsSection(ctx); return err })
	g.Go(func() (err error) { s.Contact, err = h.contactSection(ctx); return err })
	if err := g.Wait(); err != nil {
		log.Printf("Home page served with placeholder content: %v", err)
	}
	return s
}

func (h *Handler) renderHome(c *gin.Context, status int, extra gin.H) {
	sections := h.loadHome(c.Request.Context())
	corporate, factory := sections.Contact.AddressLines()
	data := gin.H{
		"title":     h.site.Company + " - " + h.site.Tagline,
		"site":      h.site,
		"popular":   sections.Popular,
		"arrival":   sections.Arrival,
		"news":      sections.News,
		"contact":   sections.Contact,
		"corporate": corporate,
		"factory":   factory,
	}
	if c.Query("contact") == "sent" {
		data["contactSuccess"] = msgContactSent
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(status, "home.html", data)
}

// HomePage renders the landing page.
func (h *Handler) HomePage(c *gin.Context) {
	h.renderHome(c, http.StatusOK, nil)
}

// SubmitContact forwards the public contact form to the API.
func (h *Handler) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		h.renderHome(c, http.StatusBadRequest, gin.H{"contactError": msgContactMissing, "contactForm": msg})
		return
	}
	msg.FullName = strings.TrimSpace(msg.FullName)
	msg.Email = strings.TrimSpace(msg.Email)

	if h.spam.IsSpam(msg.Message) {
		h.security.LogSecurityEvent("CONTACT_SPAM", "email="+msg.Email, c.ClientIP())
		log.Printf("Contact message from %s rejected as spam", msg.Email)
		c.Redirect(http.StatusSeeOther, "/?contact=sent#contact")
		return
	}

	if err := h.api.SubmitContact(c.Request.Context(), msg); err != nil {
		log.Printf("Contact submission failed: %v", err)
		h.renderHome(c, http.StatusBadGateway, gin.H{"contactError": msgContactFailed, "contactForm": msg})
		return
	}
	if err := h.email.SendContactNotification(msg); err != nil {
		log.Printf("Contact notification not sent: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/?contact=sent#contact")
}

// CatalogPage renders the product catalog grouped by category.
func (h *Handler) CatalogPage(c *gin.Context) {
	q := catalog.ParseQuery(c.Request.URL.Query())
	type categoryOption struct{ Name, Slug string }
	var categories []categoryOption
	for _, k := range catalog.Ordered {
		categories = append(categories, categoryOption{k.Name(), catalog.Slug(k.Name())})
	}
	data := gin.H{
		"title":      "Our Products",
		"site":       h.site,
		"query":      q,
		"categories": categories,
		"search":     q.Search,
		"sort":       string(q.Sort),
	}

	products, err := h.api.Products(c.Request.Context(), h.fetchSize)
	if err != nil {
		log.Printf("Catalog unavailable: %v", err)
		data["error"] = paintapi.Message(err, "load products")
		c.HTML(http.StatusOK, "products.html", data)
		return
	}

	sections := catalog.Build(products, q, catalog.Options{
		PageSize: h.pageSize,
		Image:    h.image(media.Products),
	})
	more := make(map[string]string, len(sections))
	for _, s := range sections {
		if s.HasMore() {
			more[s.Slug] = "/products?" + q.LoadMore(s.Slug, s.NextVisible()).Values().Encode() + "#" + s.Slug
		}
	}
	data["sections"] = sections
	data["more"] = more
	c.HTML(http.StatusOK, "products.html", data)
}

// FindStorePage renders the store locations.
func (h *Handler) FindStorePage(c *gin.Context) {
	c.HTML(http.StatusOK, "find_store.html", gin.H{
		"title": "Find Store",
		"site":  h.site,
		"store": h.site.Store,
	})
}
