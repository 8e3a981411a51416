package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"paintcompany/internal/catalog"
	"paintcompany/internal/media"
	"paintcompany/internal/models"
)

const productsPath = "/admin/products"

// productForm is the add/edit product form.
type productForm struct {
	ID          int    `form:"-"`
	Name        string `form:"name"`
	Category    string `form:"category"`
	Description string `form:"description"`
	Features    string `form:"features"`
	Stock       string `form:"stock"`
	ImageURL    string `form:"-"`
	models.Prices
}

func productFormOf(p models.Product) productForm {
	return productForm{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Features:    p.Features.String(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Prices:      p.Prices,
	}
}

func (f productForm) input() models.ProductInput {
	stock := strings.TrimSpace(f.Stock)
	if stock == "" {
		stock = models.DefaultStock
	}
	return models.ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Features:    models.ParseFeatures(f.Features),
		Stock:       stock,
		Prices:      f.Prices,
	}
}

// PriceFields lists the price inputs the selected category shows.
func (f productForm) PriceFields() []models.PriceField {
	return catalog.ParseKind(f.Category).Units()
}

// Price returns the form value of a price input.
func (f productForm) Price(field models.PriceField) string {
	return string(f.Get(field))
}

// validate returns the first problem with the form, or "".
func (f productForm) validate(creating bool, img *media.Image) string {
	name, category := strings.TrimSpace(f.Name), strings.TrimSpace(f.Category)
	if creating && (name == "" || category == "" || img == nil) {
		return "Please fill in all required fields (Name, Category, Image)."
	}
	if name == "" || category == "" {
		return "Please fill in all required fields (Name, Category)."
	}
	for _, field := range models.AllPriceFields {
		raw := strings.TrimSpace(string(f.Get(field)))
		if raw == "" {
			continue
		}
		d, err := parsePrice(raw)
		if err != nil {
			return fmt.Sprintf("Price for %s must be a number", field.Label())
		}
		if d.IsNegative() {
			return fmt.Sprintf("Price for %s cannot be negative", field.Label())
		}
	}
	return ""
}

// parsePrice reads a free-text price such as "500", "Rs. 500" or
// "Rs. 4,500". The stored value keeps whatever the admin typed.
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rs") {
		s = strings.TrimPrefix(s[2:], ".")
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return decimal.NewFromString(s)
}

func (f productForm) summary() []summaryLine {
	lines := []summaryLine{
		{"Name", f.Name},
		{"Category", f.Category},
		{"Stock", f.input().Stock},
	}
	for _, field := range f.PriceFields() {
		if p := f.Get(field); p.Displayable() {
			lines = append(lines, summaryLine{field.Label(), string(p)})
		}
	}
	return lines
}

// ProductsPage lists the catalog products with search and category filter.
func (h *Handler) ProductsPage(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	items, errMsg, loggedOut := loadList(c, h, &ws.Products, "fetch products", api.AdminProducts)
	if loggedOut {
		return
	}
	if msg := ws.TakeError("products"); msg != "" {
		errMsg = msg
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("q")))
	category := c.Query("category")
	image := h.image(media.Products)
	var shown []models.Product
	for _, p := range items {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		p.ImageURL = image(p.ImageURL)
		shown = append(shown, p)
	}

	form := productForm{Stock: models.DefaultStock}
	if id, err := strconv.Atoi(c.Query("edit")); err == nil {
		if p, ok := ws.Products.Find(id); ok {
			form = productFormOf(p)
			form.ImageURL = image(p.ImageURL)
		}
	}
	if draft, ok := ws.TakeDraft("products"); ok {
		if d, ok := draft.(productForm); ok {
			form = d
		}
	}

	h.renderAdmin(c, http.StatusOK, "admin_products.html", gin.H{
		"title":      "Products",
		"products":   shown,
		"total":      len(items),
		"form":       form,
		"categories": catalog.Names(),
		"search":     c.Query("q"),
		"category":   category,
		"error":      errMsg,
	})
}

// SaveProduct validates the product form and asks for confirmation. The
// request is sent from the Confirm dialog.
func (h *Handler) SaveProduct(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, ws, "products", productsPath, form, msgInvalidForm)
		return
	}
	id, editing := recordID(c)
	back := productsPath
	if editing {
		form.ID = id
		back = productsPath + "?edit=" + strconv.Itoa(id)
		if p, ok := ws.Products.Find(id); ok {
			form.ImageURL = h.image(media.Products)(p.ImageURL)
		}
	}

	img, err := formImage(c)
	if err != nil {
		h.invalid(c, ws, "products", back, form, imageMessage(err))
		return
	}
	if msg := form.validate(!editing, img); msg != "" {
		h.invalid(c, ws, "products", back, form, msg)
		return
	}

	p := &pendingChange{
		Page:    "products",
		Return:  productsPath,
		Back:    back,
		Summary: form.summary(),
		Draft:   form,
		image:   img,
	}
	in := form.input()
	if !editing {
		p.Action = "create product"
		h.openConfirm(c, ws, p, func(ctx context.Context) error {
			image := p.Image()
			if image == nil {
				return validationError("Please fill in all required fields (Name, Category, Image).")
			}
			created, err := api.CreateProduct(ctx, in, image)
			if err != nil {
				return err
			}
			ws.Products.Prepend(created)
			ws.Notify(saveTitle, "Product added successfully.")
			return nil
		})
		return
	}

	p.Action = "update product"
	h.openConfirm(c, ws, p, func(ctx context.Context) error {
		updated, err := api.UpdateProduct(ctx, id, in, p.Image())
		if err != nil {
			return err
		}
		ws.Products.Replace(updated)
		ws.Notify(saveTitle, "Product updated successfully.")
		return nil
	})
}

// DeleteProduct asks for confirmation before deleting a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	ws, _ := h.workspaceOf(c)
	api := h.adminAPI(c)
	id, ok := recordID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}

	p := &pendingChange{Page: "products", Action: "delete product", Return: productsPath, Back: productsPath}
	if existing, found := ws.Products.Find(id); found {
		p.Summary = []summaryLine{{"Name", existing.Name}}
	}
	h.openDelete(c, ws, p, func(ctx context.Context) error {
		if err := api.DeleteProduct(ctx, id); err != nil {
			return err
		}
		ws.Products.Remove(id)
		ws.Notify(saveTitle, "Product deleted successfully.")
		return nil
	})
}
